package guild

import "time"

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// Cache names, used as metric labels
const (
	CacheAuditChannel = "audit_channel"
	CachePermission   = "permission"
)

// Error messages
const (
	ErrMsgGetAuditChannelFailed = "failed to get audit channel"
	ErrMsgSetAuditChannelFailed = "failed to set audit channel"
	ErrMsgCheckPermissionFailed = "failed to check permission"
	ErrMsgGrantFailed           = "failed to grant permission"
	ErrMsgRevokeFailed          = "failed to revoke permission"
)

// Log messages
const (
	LogMsgAuditChannelSet   = "Audit channel updated"
	LogMsgPermissionGranted = "Permission granted"
	LogMsgPermissionRevoked = "Permission revoked"
)
