package registry

// SourceConfig holds configuration for the remote registry source and the
// ingestion job built around it.
type SourceConfig struct {
	// BaseURL is the paginated listing endpoint.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8000/api/companies"`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"200"`
	// MaxPages caps the number of pages fetched per run. The reported total
	// is untrusted, so the planner never schedules more than this.
	MaxPages int `mapstructure:"max_pages" default:"50"`
	// TimeoutSeconds bounds each page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// JobName identifies the job in run records.
	JobName string `mapstructure:"job_name" default:"registry-sync"`
	// ProgressEvery logs a progress line every N pages. Zero disables it.
	ProgressEvery int `mapstructure:"progress_every" default:"10"`
	// Mode selects the reconciliation mode (identity, checksum).
	Mode string `mapstructure:"mode" default:"identity"`
}

const (
	// ModeIdentity reconciles rows keyed by registration number.
	ModeIdentity = "identity"
	// ModeChecksum reconciles rows keyed by fingerprint alone.
	ModeChecksum = "checksum"
)

// IsValidMode checks if the configured reconciliation mode is valid.
func (c SourceConfig) IsValidMode() bool {
	switch c.Mode {
	case ModeIdentity, ModeChecksum:
		return true
	default:
		return false
	}
}
