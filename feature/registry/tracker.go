package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunStats accumulates reconciliation counts across all pages of a run.
// They are persisted once, when the run finishes.
type RunStats struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}

// Count adds one reconciled record's outcome to the stats.
func (s *RunStats) Count(o Outcome) {
	switch o {
	case OutcomeInserted:
		s.Inserted++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeUnchanged:
		s.Unchanged++
	}
	s.Total++
}

// RunTracker records run lifecycle in the ingest_runs table.
type RunTracker struct {
	db *gorm.DB
}

// NewRunTracker creates a tracker bound to the given connection.
func NewRunTracker(db *gorm.DB) *RunTracker {
	return &RunTracker{db: db}
}

// StartRun creates a run record in the running state and returns it.
func (t *RunTracker) StartRun(ctx context.Context, jobName string) (*IngestRun, error) {
	run := &IngestRun{
		RunUID:    uuid.NewString(),
		JobName:   jobName,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := t.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, &StorageError{Op: "start run", Err: err}
	}
	return run, nil
}

// FinishRun transitions a run to ok and attaches its aggregate stats.
func (t *RunTracker) FinishRun(ctx context.Context, run *IngestRun, stats RunStats) error {
	now := time.Now()
	updates := map[string]any{
		"status":      RunStatusOK,
		"inserted":    stats.Inserted,
		"updated":     stats.Updated,
		"unchanged":   stats.Unchanged,
		"total":       stats.Total,
		"finished_at": now,
	}
	if err := t.db.WithContext(ctx).Model(run).Updates(updates).Error; err != nil {
		return &StorageError{Op: "finish run", Err: err}
	}
	return nil
}

// FailRun transitions a run to error with a human-readable cause.
func (t *RunTracker) FailRun(ctx context.Context, run *IngestRun, message string) error {
	if message == "" {
		message = "unknown error"
	}
	now := time.Now()
	updates := map[string]any{
		"status":      RunStatusError,
		"error":       message,
		"finished_at": now,
	}
	if err := t.db.WithContext(ctx).Model(run).Updates(updates).Error; err != nil {
		return &StorageError{Op: "fail run", Err: err}
	}
	return nil
}
