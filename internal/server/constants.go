package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey                = "X-API-Key"
	HeaderAuthorization         = "Authorization"
	HeaderRequestID             = "X-Request-ID"
	HeaderForwardedFor          = "X-Forwarded-For"
	HeaderRetryAfter            = "Retry-After"
	HeaderCacheControl          = "Cache-Control"
	HeaderContentTypeOptions    = "X-Content-Type-Options"
	HeaderFrameOptions          = "X-Frame-Options"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderReferrerPolicy        = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueAPIPolicy  = "default-src 'none'; frame-ancestors 'none'"
	// HeaderValueDocsPolicy lets the bundled swagger UI load its own assets
	HeaderValueDocsPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
	HeaderValueNoReferrer = "no-referrer"
	HeaderValueNoStore    = "no-store"
)

// Guild API limits
const (
	MaxRequestBytes      = 1 << 20
	FailedAuthAlertCount = 5
	MaxRequestsPerWindow = 1000
	RateAlertLogInterval = 100
	ActivityWindow       = 5 * time.Minute
	MaxTrackedClients    = 4096
	RetryAfterSeconds    = "60"
)

// Rejection reasons reported on the api rejection metric
const (
	RejectReasonBadKey      = "bad_key"
	RejectReasonRateLimited = "rate_limited"
)

// ParamGuildID is the route parameter naming the guild of an API request
const ParamGuildID = "guildID"

// Public path prefixes that are served without request logging
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
	SwaggerPath,
}

// SwaggerPath serves the API documentation UI and doc.json
const SwaggerPath = "/swagger/"

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
