// File: internal/jobs/purge.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PurgeJob periodically hard-deletes soft-deleted cars once their retention
// window has passed.
type PurgeJob struct {
	cars          car.Repository
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewPurgeJob creates a new PurgeJob.
func NewPurgeJob(
	cars car.Repository,
	logger *zap.Logger,
	cfg *config.Config,
) *PurgeJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &PurgeJob{
		cars:          cars,
		logger:        logger.Named("PurgeJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job. A retention of zero days
// disables purging entirely; soft-deleted rows are then kept forever.
func (j *PurgeJob) SetupAndStart() error {
	if j.cfg.PurgeRetentionDays <= 0 {
		j.logger.Info("Purge retention not configured (PURGE_RETENTION_DAYS). Soft-deleted cars will be retained.")
		return nil
	}

	jobSpec := j.cfg.PurgeJobSchedule // e.g. "@daily", "0 3 * * *"
	if jobSpec == "" {
		j.logger.Warn("Purge job schedule not defined (PURGE_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule purge job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Purge job scheduled",
		zap.String("spec", jobSpec),
		zap.Int("retention_days", j.cfg.PurgeRetentionDays),
		zap.Any("jobID", jobID),
	)
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *PurgeJob) runJob() {
	j.logger.Info("Starting purge job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.cfg.PurgeRetentionDays)
	purged, err := j.cars.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Purge job run failed", zap.Int64("cars_purged", purged), zap.Error(err))
	} else {
		j.logger.Info("Purge job run completed", zap.Int64("cars_purged", purged))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *PurgeJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping purge job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Purge job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Purge job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
