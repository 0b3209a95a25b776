package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/config"
	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
)

func testConfig(logDir string) *config.Config {
	return &config.Config{
		LogLevel:    "info",
		LogFormat:   "json",
		LogDir:      logDir,
		Environment: config.EnvironmentDev,
		ServiceName: "phoenix-bot-test",
		Version:     "test",
	}
}

func TestSetupLogger_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	closer, err := SetupLogger(testConfig(dir))
	require.NoError(t, err)
	require.NotNil(t, closer)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgStartingPhoenixBot)
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	closer, err := SetupLogger(testConfig(""))
	require.NoError(t, err)
	assert.Nil(t, closer)
}

func historyConfig(t *testing.T) config.EventLogConfig {
	return config.EventLogConfig{
		PublishRetries: 2,
		RetryDelay:     10 * time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "history", "deadletter.jsonl"),
	}
}

func TestRegisterEventHandlers_SubscribesEventLog(t *testing.T) {
	repo := &eventlog.MockRepository{}
	bus := InitializeEventSystem()
	cfg := historyConfig(t)

	history, err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventlog.NewService(repo),
		EventLog:        cfg,
	})
	require.NoError(t, err)
	assert.FileExists(t, cfg.DeadLetterPath)

	repo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e eventlog.Entry) bool { return e.RegearID == "abc" })).Return(nil).Once()
	require.NoError(t, bus.Publish(context.Background(), event.NewRegearRejectedEvent("abc", domain.EventPickedUp, "not the recipient")))

	require.NoError(t, history.Shutdown(context.Background()))
	repo.AssertExpectations(t)
}

func TestRegisterEventHandlers_RetriesFailedAppend(t *testing.T) {
	repo := &eventlog.MockRepository{}
	bus := InitializeEventSystem()
	cfg := historyConfig(t)

	history, err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventlog.NewService(repo),
		EventLog:        cfg,
	})
	require.NoError(t, err)

	repo.On("LogEvent", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
	appended := make(chan struct{})
	repo.On("LogEvent", mock.Anything, mock.Anything).Return(nil).Once().Run(func(mock.Arguments) { close(appended) })

	// the failed append does not surface to the publisher
	require.NoError(t, bus.Publish(context.Background(), event.NewRegearRejectedEvent("abc", domain.EventCancel, "already completed")))

	select {
	case <-appended:
	case <-time.After(2 * time.Second):
		t.Fatal("append was not retried")
	}
	GracefulShutdown(context.Background(), ShutdownComponents{History: history})

	data, err := os.ReadFile(cfg.DeadLetterPath)
	require.NoError(t, err)
	assert.Empty(t, data)
	repo.AssertExpectations(t)
}

func TestBackgroundJobs_StopCleanly(t *testing.T) {
	repo := &eventlog.MockRepository{}
	pool, sched := StartBackgroundJobs(config.EventLogConfig{
		RetentionDays:   30,
		CleanupInterval: time.Hour,
		Workers:         1,
	}, eventlog.NewService(repo))

	done := make(chan struct{})
	go func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Scheduler: sched, WorkerPool: pool})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not finish")
	}
	repo.AssertNotCalled(t, "CleanupOldEvents")
}
