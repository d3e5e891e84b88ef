package cmd

import (
	"context"
	"fmt"

	"registry-ingest/core/config"
	"registry-ingest/core/database"
	"registry-ingest/core/logger"
	"registry-ingest/core/storage"
	"registry-ingest/feature/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ingestCmd runs one end-to-end ingestion run. The process exits non-zero
// on any unrecovered failure; an external supervisor handles re-invocation.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion of the remote company registry",
	Long: `Fetches the paginated company registry, reconciles every record against
the local companies table, and records the run with aggregate statistics.

Running it again against unchanged source data is a no-op: all records
classify as unchanged and no row is rewritten.`,
	RunE: runIngest,
}

func init() {
	RootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Source.IsValidMode() {
		return fmt.Errorf("invalid reconciliation mode %q", cfg.Source.Mode)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// Connect to database. The connection is held for the whole run and
	// released on every exit path.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			l.Warn("failed to close database", zap.Error(closeErr))
		}
	}()

	// Optional raw page archival
	var archiver *registry.Archiver
	if cfg.Storage.Enabled() {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		archiver = registry.NewArchiver(client, cfg.Storage.Bucket, l)
		if err := archiver.EnsureBucket(ctx); err != nil {
			return err
		}
	}

	job := registry.NewJob(cfg.Source, db, archiver, l)
	if _, err := job.Run(ctx); err != nil {
		// The job has already logged and persisted the failure; returning
		// the error makes the process exit 1.
		return err
	}
	return nil
}
