package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhoenixBot_Go/internal/database/generated"
)

// GuildRepository implements repository.Guild for PostgreSQL
type GuildRepository struct {
	q *generated.Queries
}

// NewGuildRepository creates a new GuildRepository
func NewGuildRepository(db *pgxpool.Pool) *GuildRepository {
	return &GuildRepository{q: generated.New(db)}
}

// GetAuditChannel returns the configured audit channel or ""
func (r *GuildRepository) GetAuditChannel(ctx context.Context, guildID string) (string, error) {
	channelID, err := r.q.GetAuditChannel(ctx, guildID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToGetAuditChannel, err)
	}
	return channelID, nil
}

// SetAuditChannel stores the audit destination. An empty channelID clears it.
func (r *GuildRepository) SetAuditChannel(ctx context.Context, guildID, channelID string) error {
	err := r.q.UpsertAuditChannel(ctx, generated.UpsertAuditChannelParams{GuildID: guildID, AuditChannelID: channelID})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetAuditChannel, err)
	}
	return nil
}

func (r *GuildRepository) HasPermission(ctx context.Context, guildID, subjectID, action string) (bool, error) {
	ok, err := r.q.HasPermission(ctx, generated.HasPermissionParams{GuildID: guildID, SubjectID: subjectID, Action: action})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckPermission, err)
	}
	return ok, nil
}

func (r *GuildRepository) GrantPermission(ctx context.Context, guildID, subjectID, action string) error {
	err := r.q.GrantPermission(ctx, generated.GrantPermissionParams{GuildID: guildID, SubjectID: subjectID, Action: action})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGrantPermission, err)
	}
	return nil
}

func (r *GuildRepository) RevokePermission(ctx context.Context, guildID, subjectID, action string) error {
	err := r.q.RevokePermission(ctx, generated.RevokePermissionParams{GuildID: guildID, SubjectID: subjectID, Action: action})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRevokePermission, err)
	}
	return nil
}
