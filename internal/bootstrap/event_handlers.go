package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/PhoenixBot_Go/internal/config"
	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
	"github.com/osse101/PhoenixBot_Go/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	EventLog        config.EventLogConfig
}

// RegisterEventHandlers sets up all event subscribers:
// the metrics collector and the event logger that persists regear history.
//
// The event logger sits on its own bus behind a ResilientPublisher, so a
// failed append is retried without re-running the other subscribers. The
// returned publisher must be shut down before the database pool closes.
func RegisterEventHandlers(deps EventHandlerDependencies) (*event.ResilientPublisher, error) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	historyBus := event.NewMemoryBus()
	if err := deps.EventLogService.Subscribe(historyBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}

	if err := os.MkdirAll(filepath.Dir(deps.EventLog.DeadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateHistoryWriter, err)
	}
	publisher, err := event.NewResilientPublisher(historyBus, deps.EventLog.PublishRetries, deps.EventLog.RetryDelay, deps.EventLog.DeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateHistoryWriter, err)
	}

	for _, eventType := range eventlog.LoggedTypes() {
		deps.EventBus.Subscribe(eventType, publisher.Publish)
	}
	slog.Info(LogMsgEventLoggerInitialized, "retries", deps.EventLog.PublishRetries, "dead_letter", deps.EventLog.DeadLetterPath)

	return publisher, nil
}
