package worker

// Log messages
const (
	LogMsgJobFailed    = "Background job failed"
	LogMsgJobCompleted = "Background job completed"
	LogMsgJobDropped   = "Background job dropped, pool is stopping"
)
