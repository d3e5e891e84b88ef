package cmd

import (
	"context"
	"fmt"

	"registry-ingest/core/config"
	"registry-ingest/core/database"
	"registry-ingest/core/logger"
	"registry-ingest/feature/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runsLimit int

// runsCmd lists recent ingestion runs for quick diagnosis from the shell.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingestion runs",
	RunE:  runListRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to show")
	RootCmd.AddCommand(runsCmd)
}

func runListRuns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Console output reads better for an interactive listing
	cfg.Log.Format = "console"
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	svc := registry.NewService(db, l)
	runs, err := svc.RecentRuns(ctx, runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		l.Info("No runs recorded yet")
		return nil
	}

	for _, run := range runs {
		fields := []zap.Field{
			zap.String("run_uid", run.RunUID),
			zap.String("job", run.JobName),
			zap.String("status", run.Status),
			zap.Time("started_at", run.StartedAt),
			zap.Int("inserted", run.Inserted),
			zap.Int("updated", run.Updated),
			zap.Int("unchanged", run.Unchanged),
			zap.Int("total", run.Total),
		}
		if run.Error != "" {
			fields = append(fields, zap.String("error", run.Error))
		}
		l.Info("run", fields...)
	}
	return nil
}
