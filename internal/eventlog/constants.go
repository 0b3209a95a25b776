package eventlog

// Log messages - service events
const (
	LogMsgEventLogged       = "Event logged to database"
	LogMsgFailedToLogEvent  = "Failed to log event to database"
	LogMsgUnreadablePayload = "Event payload has no regear id, skipping log"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgHistoryFailed = "failed to load regear history"
)

// DefaultHistoryLimit caps the entries returned by History
const DefaultHistoryLimit = 50
