package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reindexTimeout = 5 * time.Minute

// Reindexer rebuilds the catalog search index.
type Reindexer interface {
	ReindexCatalog(ctx context.Context) (int, error)
}

// CatalogReindexJob periodically rebuilds the search index so that index
// writes dropped during CRUD are repaired.
type CatalogReindexJob struct {
	reindexer     Reindexer
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewCatalogReindexJob creates a new CatalogReindexJob.
func NewCatalogReindexJob(reindexer Reindexer, logger *zap.Logger, cfg *config.Config) *CatalogReindexJob {
	cronLog := NewCronLogger(logger.Named("cron"))
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog)),
	)

	return &CatalogReindexJob{
		reindexer:     reindexer,
		logger:        logger.Named("CatalogReindexJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job. An empty schedule or a
// disabled index leaves the job off.
func (j *CatalogReindexJob) SetupAndStart() error {
	jobSpec := j.cfg.CatalogReindexSchedule
	if jobSpec == "" {
		j.logger.Warn("Catalog reindex schedule not defined (CATALOG_REINDEX_SCHEDULE). Job will not run.")
		return nil
	}
	if j.cfg.ElasticsearchURL == "" {
		j.logger.Info("Elasticsearch not configured, catalog reindex job disabled")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.Run)
	if err != nil {
		j.logger.Error("Failed to schedule catalog reindex job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Catalog reindex job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// Run performs one rebuild.
func (j *CatalogReindexJob) Run() {
	j.logger.Info("Starting catalog reindex run...")
	ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
	defer cancel()

	indexed, err := j.reindexer.ReindexCatalog(ctx)
	switch {
	case errors.Is(err, common.ErrServiceUnavailable):
		j.logger.Warn("Catalog reindex skipped, index unavailable")
	case err != nil:
		j.logger.Error("Catalog reindex run failed", zap.Int("indexed", indexed), zap.Error(err))
	default:
		j.logger.Info("Catalog reindex run completed", zap.Int("indexed", indexed))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *CatalogReindexJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping catalog reindex scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Catalog reindex scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Catalog reindex scheduler stop timed out.")
	}
}

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Debug(msg, cl.fields(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(cl.fields(keysAndValues...), zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) fields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(key, keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(key, "MISSING_VALUE"))
		}
	}
	return fields
}
