package bootstrap

import (
	"log/slog"

	"github.com/osse101/PhoenixBot_Go/internal/config"
	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
	"github.com/osse101/PhoenixBot_Go/internal/scheduler"
	"github.com/osse101/PhoenixBot_Go/internal/worker"
)

// cleanupQueueSize bounds pending cleanup runs; one is normally enough
const cleanupQueueSize = 4

// StartBackgroundJobs starts the worker pool and schedules the regear
// history retention cleanup on it.
func StartBackgroundJobs(cfg config.EventLogConfig, svc eventlog.Service) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(cfg.Workers, cleanupQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.CleanupInterval, eventlog.NewCleanupJob(svc, cfg.RetentionDays))
	slog.Info(LogMsgCleanupScheduled, "interval", cfg.CleanupInterval, "retention_days", cfg.RetentionDays)

	return pool, sched
}
