package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileName is the active log file inside the log directory
	LogFileName = "phoenix-bot.log"

	// LogFileMaxSizeMB rotates the active file once it grows past this size
	LogFileMaxSizeMB = 20

	// LogFileRetentionCount is the number of rotated files to retain
	LogFileRetentionCount = 9

	// LogFileMaxAgeDays removes rotated files older than this
	LogFileMaxAgeDays = 30
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingPhoenixBot  = "Starting PhoenixBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
)

// =============================================================================
// Event System
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
	ErrMsgFailedCreateHistoryWriter  = "failed to create event history publisher"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	LogMsgCleanupScheduled = "Event log cleanup scheduled"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgShuttingDownWorkers  = "Stopping background jobs..."
	LogMsgFlushingEventHistory = "Flushing pending event history..."
	LogMsgEventHistoryFlushFailed = "Event history flush incomplete"
	LogMsgClosingDatabase      = "Closing database pool..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgLogFileCloseFailed   = "Failed to close log file"
)
