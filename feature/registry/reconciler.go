package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Outcome classifies what a single record reconciliation did.
type Outcome string

const (
	// OutcomeInserted means the key had never been seen and a row was created.
	OutcomeInserted Outcome = "inserted"
	// OutcomeUpdated means the row existed and its fingerprint changed.
	OutcomeUpdated Outcome = "updated"
	// OutcomeUnchanged means the stored fingerprint matched; nothing was
	// written and fetched_at was not bumped.
	OutcomeUnchanged Outcome = "unchanged"
)

// Reconciler upserts records against the companies table.
type Reconciler struct {
	db   *gorm.DB
	mode string
}

// NewReconciler creates a reconciler in the given mode (ModeIdentity or
// ModeChecksum).
func NewReconciler(db *gorm.DB, mode string) *Reconciler {
	if mode == "" {
		mode = ModeIdentity
	}
	return &Reconciler{db: db, mode: mode}
}

// Reconcile processes one record: compute its fingerprint, then perform a
// conditional upsert and classify the result. The read-compare-write runs
// inside a transaction; the unique indexes on registration_number and
// fingerprint are the safety net for crash consistency.
func (r *Reconciler) Reconcile(ctx context.Context, rec Record) (Outcome, error) {
	fingerprint := rec.Fingerprint()

	if r.mode == ModeChecksum {
		return r.reconcileByChecksum(ctx, rec, fingerprint)
	}
	return r.reconcileByIdentity(ctx, rec, fingerprint)
}

// reconcileByIdentity keys the upsert on registration number. Matching
// fingerprints skip the write entirely so unchanged rows are never rewritten
// at scale.
func (r *Reconciler) reconcileByIdentity(ctx context.Context, rec Record, fingerprint string) (Outcome, error) {
	if rec.RegistrationNumber == "" {
		return "", &StorageError{Op: "upsert", Err: fmt.Errorf("record has no registration number (payload %.80s)", rec.Payload)}
	}

	var outcome Outcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Company
		err := tx.Where("registration_number = ?", rec.RegistrationNumber).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row := rec.toModel(fingerprint)
			row.FetchedAt = time.Now()
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			outcome = OutcomeInserted
			return nil
		}
		if err != nil {
			return err
		}

		if existing.Fingerprint == fingerprint {
			outcome = OutcomeUnchanged
			return nil
		}

		updates := map[string]any{
			"name":        rec.Name,
			"status":      rec.Status,
			"category":    rec.Category,
			"city":        rec.City,
			"fingerprint": fingerprint,
			"payload":     rec.Payload,
			"fetched_at":  time.Now(),
		}
		if err := tx.Model(&Company{}).
			Where("registration_number = ?", rec.RegistrationNumber).
			Updates(updates).Error; err != nil {
			return err
		}
		outcome = OutcomeUpdated
		return nil
	})
	if err != nil {
		return "", &StorageError{Op: "upsert", Err: err}
	}
	return outcome, nil
}

// reconcileByChecksum is the degraded mode for sources without a stable
// identity field: insert if the fingerprint is unseen, otherwise skip. It
// cannot update rows in place and reports duplicates as unchanged.
func (r *Reconciler) reconcileByChecksum(ctx context.Context, rec Record, fingerprint string) (Outcome, error) {
	var outcome Outcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Company{}).Where("fingerprint = ?", fingerprint).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			outcome = OutcomeUnchanged
			return nil
		}

		row := rec.toModel(fingerprint)
		row.FetchedAt = time.Now()
		if row.RegistrationNumber == "" {
			// Identityless sources still need to satisfy the unique key on
			// registration_number; the fingerprint doubles as a surrogate.
			row.RegistrationNumber = fingerprint
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		outcome = OutcomeInserted
		return nil
	})
	if err != nil {
		return "", &StorageError{Op: "upsert", Err: err}
	}
	return outcome, nil
}
