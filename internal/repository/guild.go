package repository

import "context"

// Guild defines the interface for per-guild regear settings and permission grants
type Guild interface {
	// GetAuditChannel returns "" when no audit destination is configured
	GetAuditChannel(ctx context.Context, guildID string) (string, error)
	SetAuditChannel(ctx context.Context, guildID, channelID string) error

	// HasPermission reports whether subjectID (a user or role id) holds a grant for action
	HasPermission(ctx context.Context, guildID, subjectID, action string) (bool, error)
	GrantPermission(ctx context.Context, guildID, subjectID, action string) error
	RevokePermission(ctx context.Context, guildID, subjectID, action string) error
}
