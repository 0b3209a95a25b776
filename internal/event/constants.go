package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// Retry queue
const (
	// RetryQueueSize bounds the events waiting for a retry; overflow is dead-lettered
	RetryQueueSize = 100

	// DeadLetterSchemaVersion is the format version of dead-letter entries
	DeadLetterSchemaVersion = "1.0"

	// DeadLetterFilePermissions is the file mode for dead-letter files
	DeadLetterFilePermissions = 0o644
)

// Resilient publisher log messages
const (
	LogMsgPublishFailedQueued   = "Failed to publish event, queued for retry"
	LogMsgRetryQueueFull        = "Retry queue full, dead-lettering event"
	LogMsgRetrySucceeded        = "Published event after retry"
	LogMsgRetryFailed           = "Event retry failed"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgDeadLetterCloseFailed = "Failed to close dead letter file"
)
