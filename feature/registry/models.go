package registry

import "time"

// Company is one persisted row per distinct registration number ever seen.
// The tracked columns (registration number, name, status, category, city)
// feed the fingerprint; Payload archives the full source record as last
// observed.
type Company struct {
	ID                 uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:64;uniqueIndex;not null"`
	Name               string    `json:"name" gorm:"size:255"`
	Status             string    `json:"status" gorm:"size:64"`
	Category           string    `json:"category" gorm:"size:128"`
	City               string    `json:"city" gorm:"size:128"`
	Fingerprint        string    `json:"fingerprint" gorm:"size:64;uniqueIndex;not null"`
	Payload            string    `json:"payload" gorm:"type:text"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// TableName sets the table name for the Company model.
func (Company) TableName() string { return "companies" }

const (
	// RunStatusRunning marks a run that has started but not yet finished.
	RunStatusRunning = "running"
	// RunStatusOK marks a run that completed and persisted its stats.
	RunStatusOK = "ok"
	// RunStatusError marks a run that aborted; Error holds the cause.
	RunStatusError = "error"
)

// IngestRun is one append-only row per job invocation. A run is created in
// the running state and makes exactly one terminal transition (ok or error)
// before the process exits.
type IngestRun struct {
	ID         uint       `json:"-" gorm:"primaryKey;autoIncrement"`
	RunUID     string     `json:"run_uid" gorm:"size:36;uniqueIndex;not null"`
	JobName    string     `json:"job_name" gorm:"size:64;not null"`
	Status     string     `json:"status" gorm:"size:16;not null;default:running"`
	Inserted   int        `json:"inserted" gorm:"not null;default:0"`
	Updated    int        `json:"updated" gorm:"not null;default:0"`
	Unchanged  int        `json:"unchanged" gorm:"not null;default:0"`
	Total      int        `json:"total" gorm:"not null;default:0"`
	Error      string     `json:"error,omitempty" gorm:"type:text"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// TableName sets the table name for the IngestRun model.
func (IngestRun) TableName() string { return "ingest_runs" }
