// Package guild serves per-guild regear settings: the audit destination and
// explicit permission grants.
package guild

import (
	"context"
	"fmt"

	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/repository"
	"github.com/osse101/PhoenixBot_Go/internal/validation"
)

// auditChannelRequest is the validated input of SetAuditChannel
type auditChannelRequest struct {
	GuildID   string `validate:"required,numeric"`
	ChannelID string `validate:"required,numeric"`
}

// grantRequest is the validated input of Grant and Revoke
type grantRequest struct {
	GuildID   string `validate:"required,numeric"`
	SubjectID string `validate:"required,numeric"`
	Action    string `validate:"required,oneof=regear inventory"`
}

// Service reads and writes guild settings through a cache
type Service struct {
	repo   repository.Guild
	audit  *settingsCache[string]
	grants *settingsCache[bool]
}

// NewService creates a guild settings service
func NewService(repo repository.Guild, cfg CacheConfig) *Service {
	return &Service{
		repo:   repo,
		audit:  newSettingsCache[string](CacheAuditChannel, cfg),
		grants: newSettingsCache[bool](CachePermission, cfg),
	}
}

// AuditChannel returns the audit channel of guildID, "" when unset
func (s *Service) AuditChannel(ctx context.Context, guildID string) (string, error) {
	if channelID, ok := s.audit.Get(guildID); ok {
		return channelID, nil
	}

	channelID, err := s.repo.GetAuditChannel(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgGetAuditChannelFailed, err)
	}
	s.audit.Set(guildID, channelID)
	return channelID, nil
}

// SetAuditChannel stores the audit destination of guildID
func (s *Service) SetAuditChannel(ctx context.Context, guildID, channelID string) error {
	if err := validation.Get().Struct(auditChannelRequest{GuildID: guildID, ChannelID: channelID}); err != nil {
		return err
	}
	if err := s.repo.SetAuditChannel(ctx, guildID, channelID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetAuditChannelFailed, err)
	}
	s.audit.Invalidate(guildID)

	logger.FromContext(ctx).Info(LogMsgAuditChannelSet, "guild_id", guildID, "channel_id", channelID)
	return nil
}

// HasPermission reports whether subjectID holds a grant for action
func (s *Service) HasPermission(ctx context.Context, guildID, subjectID, action string) (bool, error) {
	key := permissionKey(guildID, subjectID, action)
	if ok, found := s.grants.Get(key); found {
		return ok, nil
	}

	ok, err := s.repo.HasPermission(ctx, guildID, subjectID, action)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgCheckPermissionFailed, err)
	}
	s.grants.Set(key, ok)
	return ok, nil
}

// Grant gives subjectID (a user or role) the action permission
func (s *Service) Grant(ctx context.Context, guildID, subjectID, action string) error {
	if err := validation.Get().Struct(grantRequest{GuildID: guildID, SubjectID: subjectID, Action: action}); err != nil {
		return err
	}
	if err := s.repo.GrantPermission(ctx, guildID, subjectID, action); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGrantFailed, err)
	}
	s.grants.Invalidate(permissionKey(guildID, subjectID, action))

	logger.FromContext(ctx).Info(LogMsgPermissionGranted, "guild_id", guildID, "subject_id", subjectID, "action", action)
	return nil
}

// Revoke removes a grant. Revoking a missing grant is not an error.
func (s *Service) Revoke(ctx context.Context, guildID, subjectID, action string) error {
	if err := validation.Get().Struct(grantRequest{GuildID: guildID, SubjectID: subjectID, Action: action}); err != nil {
		return err
	}
	if err := s.repo.RevokePermission(ctx, guildID, subjectID, action); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRevokeFailed, err)
	}
	s.grants.Invalidate(permissionKey(guildID, subjectID, action))

	logger.FromContext(ctx).Info(LogMsgPermissionRevoked, "guild_id", guildID, "subject_id", subjectID, "action", action)
	return nil
}

func permissionKey(guildID, subjectID, action string) string {
	return guildID + ":" + subjectID + ":" + action
}
