package registry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite DB with the provisioned schema.
func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := Provision(db); err != nil {
		t.Fatalf("failed to provision schema: %v", err)
	}
	return db
}

func testPage() []Record {
	return []Record{
		{RegistrationNumber: "R-1", Name: "Acme", Status: "active", Category: "retail", City: "Bern", Payload: `{"registration_number":"R-1"}`},
		{RegistrationNumber: "R-2", Name: "Globex", Status: "active", Category: "energy", City: "Basel", Payload: `{"registration_number":"R-2"}`},
		{RegistrationNumber: "R-3", Name: "Initech", Status: "liquidation", Category: "software", City: "Zug", Payload: `{"registration_number":"R-3"}`},
	}
}

func reconcileAll(t *testing.T, r *Reconciler, records []Record) RunStats {
	t.Helper()
	var stats RunStats
	for _, rec := range records {
		outcome, err := r.Reconcile(context.Background(), rec)
		require.NoError(t, err)
		stats.Count(outcome)
	}
	return stats
}

func TestReconcile_ClassificationAndIdempotence(t *testing.T) {
	db := setupTestDB(t, "reconcile_classification")
	r := NewReconciler(db, ModeIdentity)

	// First pass over an empty table: everything inserts.
	stats := reconcileAll(t, r, testPage())
	assert.Equal(t, RunStats{Inserted: 3, Total: 3}, stats)

	// Second pass over identical data: pure no-op.
	stats = reconcileAll(t, r, testPage())
	assert.Equal(t, RunStats{Unchanged: 3, Total: 3}, stats)

	// Change one tracked field: exactly that record updates.
	page := testPage()
	page[1].Status = "dissolved"
	stats = reconcileAll(t, r, page)
	assert.Equal(t, RunStats{Updated: 1, Unchanged: 2, Total: 3}, stats)

	var row Company
	require.NoError(t, db.Where("registration_number = ?", "R-2").Take(&row).Error)
	assert.Equal(t, "dissolved", row.Status)

	// Still one row per key.
	var count int64
	db.Model(&Company{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestReconcile_UnchangedRowKeepsTimestamp(t *testing.T) {
	db := setupTestDB(t, "reconcile_timestamp")
	r := NewReconciler(db, ModeIdentity)

	rec := testPage()[0]
	_, err := r.Reconcile(context.Background(), rec)
	require.NoError(t, err)

	// Backdate the row so any accidental write would be visible.
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&Company{}).
		Where("registration_number = ?", rec.RegistrationNumber).
		Update("fetched_at", past).Error)

	outcome, err := r.Reconcile(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	var row Company
	require.NoError(t, db.Where("registration_number = ?", rec.RegistrationNumber).Take(&row).Error)
	assert.Equal(t, past.Unix(), row.FetchedAt.Unix(), "no-op must not bump fetched_at")
}

func TestReconcile_UpdateRefreshesPayloadAndTimestamp(t *testing.T) {
	db := setupTestDB(t, "reconcile_update")
	r := NewReconciler(db, ModeIdentity)

	rec := testPage()[0]
	_, err := r.Reconcile(context.Background(), rec)
	require.NoError(t, err)

	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&Company{}).
		Where("registration_number = ?", rec.RegistrationNumber).
		Update("fetched_at", past).Error)

	rec.Name = "Acme International"
	rec.Payload = `{"registration_number":"R-1","name":"Acme International"}`
	outcome, err := r.Reconcile(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	var row Company
	require.NoError(t, db.Where("registration_number = ?", rec.RegistrationNumber).Take(&row).Error)
	assert.Equal(t, "Acme International", row.Name)
	assert.Equal(t, rec.Payload, row.Payload)
	assert.True(t, row.FetchedAt.After(past), "update must bump fetched_at")
	assert.Equal(t, rec.Fingerprint(), row.Fingerprint)
}

func TestReconcile_MissingIdentityFails(t *testing.T) {
	db := setupTestDB(t, "reconcile_no_identity")
	r := NewReconciler(db, ModeIdentity)

	_, err := r.Reconcile(context.Background(), Record{Name: "Nameless"})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestReconcile_ChecksumMode(t *testing.T) {
	db := setupTestDB(t, "reconcile_checksum")
	r := NewReconciler(db, ModeChecksum)

	rec := Record{Name: "Anon Co", Status: "active", Payload: `{"name":"Anon Co"}`}

	outcome, err := r.Reconcile(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	// Same content again: skipped, not updated.
	outcome, err = r.Reconcile(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	// Changed content inserts a second row; checksum mode cannot update
	// in place.
	rec.Status = "dissolved"
	outcome, err = r.Reconcile(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	var count int64
	db.Model(&Company{}).Count(&count)
	assert.EqualValues(t, 2, count)
}
