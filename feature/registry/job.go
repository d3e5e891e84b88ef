package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Job sequences one ingestion run: provision storage, start the run record,
// fetch page 1 and reconcile it, plan the remaining pages from the reported
// total, reconcile pages 2..N strictly in ascending order, then finalize.
// Pages are processed sequentially on purpose: later pages may repeat keys
// from earlier ones, and deterministic order keeps stats reproducible.
type Job struct {
	cfg        SourceConfig
	db         *gorm.DB
	fetcher    *Client
	reconciler *Reconciler
	tracker    *RunTracker
	archiver   *Archiver
	log        *zap.Logger
}

// NewJob wires an ingestion job. The archiver may be nil, which disables
// raw page archival.
func NewJob(cfg SourceConfig, db *gorm.DB, archiver *Archiver, log *zap.Logger) *Job {
	return &Job{
		cfg:        cfg,
		db:         db,
		fetcher:    NewClient(cfg, log),
		reconciler: NewReconciler(db, cfg.Mode),
		tracker:    NewRunTracker(db),
		archiver:   archiver,
		log:        log,
	}
}

// Provision creates the companies and ingest_runs tables if absent. It is
// idempotent and safe to run on every invocation.
func Provision(db *gorm.DB) error {
	if err := db.AutoMigrate(&Company{}, &IngestRun{}); err != nil {
		return &StorageError{Op: "provision", Err: err}
	}
	return nil
}

// Run executes one end-to-end ingestion run. Exactly one terminal state is
// recorded on the run row before Run returns, whether the body completed,
// failed, or panicked; the supervisor decides if and when to re-invoke.
func (j *Job) Run(ctx context.Context) (stats RunStats, err error) {
	if err = Provision(j.db); err != nil {
		return stats, err
	}

	run, err := j.tracker.StartRun(ctx, j.cfg.JobName)
	if err != nil {
		return stats, err
	}

	log := j.log.With(zap.String("run_uid", run.RunUID))
	log.Info("run started",
		zap.String("job", j.cfg.JobName),
		zap.String("source", j.cfg.BaseURL),
		zap.String("mode", j.cfg.Mode),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during ingestion: %v", r)
		}
		// The terminal transition must land even when the run context is
		// already dead, so bookkeeping uses a fresh context.
		if err != nil {
			log.Error("run failed", zap.Error(err))
			if failErr := j.tracker.FailRun(context.Background(), run, err.Error()); failErr != nil {
				log.Error("failed to persist run failure", zap.Error(failErr))
			}
			return
		}
		if finErr := j.tracker.FinishRun(context.Background(), run, stats); finErr != nil {
			err = finErr
			log.Error("failed to persist run stats", zap.Error(finErr))
			return
		}
		log.Info("run completed",
			zap.Int("inserted", stats.Inserted),
			zap.Int("updated", stats.Updated),
			zap.Int("unchanged", stats.Unchanged),
			zap.Int("total", stats.Total),
		)
	}()

	// Page 1 supplies the authoritative total, but its records count too.
	first, err := j.fetcher.FetchPage(ctx, 1, j.cfg.PageSize)
	if err != nil {
		return stats, err
	}
	j.archivePage(ctx, run.RunUID, first)
	if err = j.reconcilePage(ctx, first, &stats); err != nil {
		return stats, err
	}

	totalPages := PlanPages(first.Total, j.cfg.PageSize, j.cfg.MaxPages)
	log.Info("pagination planned",
		zap.Int("reported_total", first.Total),
		zap.Int("page_size", j.cfg.PageSize),
		zap.Int("total_pages", totalPages),
	)

	for page := 2; page <= totalPages; page++ {
		var result *PageResult
		result, err = j.fetcher.FetchPage(ctx, page, j.cfg.PageSize)
		if err != nil {
			return stats, err
		}
		j.archivePage(ctx, run.RunUID, result)
		if err = j.reconcilePage(ctx, result, &stats); err != nil {
			return stats, err
		}

		if j.cfg.ProgressEvery > 0 && page%j.cfg.ProgressEvery == 0 {
			log.Info("ingestion progress",
				zap.Int("page", page),
				zap.Int("total_pages", totalPages),
				zap.Int("records", stats.Total),
			)
		}
	}

	return stats, nil
}

// reconcilePage reconciles every record of a page in order. The first
// failing record aborts the run; partially applied pages would leave stats
// inconsistent with persisted state.
func (j *Job) reconcilePage(ctx context.Context, page *PageResult, stats *RunStats) error {
	for _, rec := range page.Records {
		outcome, err := j.reconciler.Reconcile(ctx, rec)
		if err != nil {
			return err
		}
		stats.Count(outcome)
	}
	return nil
}

func (j *Job) archivePage(ctx context.Context, runUID string, page *PageResult) {
	if j.archiver == nil {
		return
	}
	j.archiver.ArchivePage(ctx, runUID, page.Page, page.Raw)
}
