package eventlog

import (
	"context"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// CleanupJobName labels the retention job in logs and metrics
const CleanupJobName = "regear_history_cleanup"

// CleanupJob deletes regear history older than the retention window
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a retention job keeping retentionDays of history
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
	}
}

// Name implements worker.Job
func (j *CleanupJob) Name() string { return CleanupJobName }

// Process deletes the expired history rows
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	log.Info(LogMsgCleanupJobStarting, "retention_days", j.retentionDays, "cutoff", cutoff.Format(time.DateOnly))

	started := time.Now()
	count, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "duration", time.Since(started))
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "deleted_count", count, "duration", time.Since(started))
	return nil
}
