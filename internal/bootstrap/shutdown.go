package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/scheduler"
	"github.com/osse101/PhoenixBot_Go/internal/server"
	"github.com/osse101/PhoenixBot_Go/internal/sse"
	"github.com/osse101/PhoenixBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server     *server.Server
	Feed       *sse.Hub
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	History    *event.ResilientPublisher
	DBPool     *pgxpool.Pool
	LogFile    io.Closer
}

// GracefulShutdown stops components in dependency order:
// 1. Live feed (ends open streams) and HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (no new jobs, let the running one finish)
// 3. Event history publisher (pending retries get a final attempt)
// 4. Database pool
// 5. Log file
//
// The Discord session is closed by Bot.Run when its context ends.
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Feed != nil {
		components.Feed.Stop()
	}
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownWorkers)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.History != nil {
		slog.Info(LogMsgFlushingEventHistory)
		if err := components.History.Shutdown(ctx); err != nil {
			slog.Error(LogMsgEventHistoryFlushFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)

	if components.LogFile != nil {
		if err := components.LogFile.Close(); err != nil {
			slog.Error(LogMsgLogFileCloseFailed, "error", err)
		}
	}
}
