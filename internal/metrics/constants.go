package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameAPIRejections        = "api_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Discord metric names
const (
	MetricNameInteractionsTotal   = "discord_interactions_total"
	MetricNameInteractionDuration = "discord_interaction_duration_seconds"
)

// Regear metric names
const (
	MetricNameRegearTransitions = "regear_transitions_total"
	MetricNameRegearItemsIssued = "regear_items_issued_total"
	MetricNameRegearRejections  = "regear_rejections_total"
	MetricNameSurfaceFailures   = "regear_surface_failures_total"
	MetricNameCacheLookups      = "guild_settings_cache_lookups_total"
	MetricNameJobRuns           = "background_job_runs_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextAPIRejections        = "Regear API requests refused before reaching a handler"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Discord metric help text
const (
	HelpTextInteractionsTotal   = "Total number of Discord interactions handled"
	HelpTextInteractionDuration = "Discord interaction handling latency in seconds"
)

// Regear metric help text
const (
	HelpTextRegearTransitions = "Total number of regear reservations entering each status"
	HelpTextRegearItemsIssued = "Total number of items handed out by completed regears"
	HelpTextRegearRejections  = "Total number of refused regear lifecycle actions"
	HelpTextSurfaceFailures   = "Total number of regear view deliveries or updates that failed"
	HelpTextCacheLookups      = "Guild settings cache lookups by result"
	HelpTextJobRuns           = "Background maintenance job runs by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelCommand   = "command"
	LabelOutcome   = "outcome"
	LabelEvent     = "event"
	LabelReason    = "reason"
	LabelSlot      = "slot"
	LabelTier      = "tier"
	LabelSurface   = "surface"
	LabelOperation = "operation"
	LabelCache     = "cache"
	LabelResult    = "result"
	LabelJob       = "job"
)

// Label values
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"

	CacheHit  = "hit"
	CacheMiss = "miss"

	// PathUnmatched labels requests that matched no route
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// InteractionLatencyBuckets covers Discord's three second acknowledgement window
var InteractionLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2, 3, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected shape"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
