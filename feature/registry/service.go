package registry

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service exposes read-only queries over ingested data and run history,
// shared by the observability API and the CLI.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a query service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// RecentRuns returns the latest run records, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []IngestRun
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, &StorageError{Op: "list runs", Err: err}
	}
	return runs, nil
}

// RunByUID returns a single run record, or nil when unknown.
func (s *Service) RunByUID(ctx context.Context, uid string) (*IngestRun, error) {
	var run IngestRun
	err := s.db.WithContext(ctx).Where("run_uid = ?", uid).Take(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get run", Err: err}
	}
	return &run, nil
}

// CompanyByRegistration returns the persisted row for a registration
// number, or nil when the key has never been observed.
func (s *Service) CompanyByRegistration(ctx context.Context, number string) (*Company, error) {
	var company Company
	err := s.db.WithContext(ctx).Where("registration_number = ?", number).Take(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get company", Err: err}
	}
	return &company, nil
}

// CompanyCount returns the number of distinct persisted companies.
func (s *Service) CompanyCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Company{}).Count(&count).Error; err != nil {
		return 0, &StorageError{Op: "count companies", Err: err}
	}
	return count, nil
}
