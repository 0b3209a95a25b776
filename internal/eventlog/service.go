// Package eventlog keeps a queryable history of regear lifecycle events.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger on every regear event type
	Subscribe(bus event.Bus) error

	// History returns the logged events of one regear, oldest first
	History(ctx context.Context, guildID, regearID string) ([]Entry, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LoggedTypes lists the event types persisted by Subscribe
func LoggedTypes() []event.Type {
	return append([]event.Type{event.RegearRejected, event.SurfaceFailed}, event.RegearTypes...)
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedTypes() {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// ids is the subset of every regear payload that addresses the reservation
type ids struct {
	RegearID string `json:"regear_id"`
	GuildID  string `json:"guild_id"`
}

// handleEvent persists evt. Payloads are stored as their JSON encoding.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", evt.Type, err)
	}

	var key ids
	if err := json.Unmarshal(payload, &key); err != nil || key.RegearID == "" {
		log.Debug(LogMsgUnreadablePayload, "type", evt.Type)
		return nil
	}
	if key.GuildID == "" {
		key.GuildID = evt.Metadata["guild_id"]
	}

	entry := Entry{
		EventType: string(evt.Type),
		RegearID:  key.RegearID,
		GuildID:   key.GuildID,
		Payload:   payload,
		Metadata:  evt.Metadata,
	}
	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "regear_id", key.RegearID)
	return nil
}

// History returns the logged events of regearID. Rejections and surface
// failures carry no guild, so they are matched on the regear id alone.
func (s *service) History(ctx context.Context, guildID, regearID string) ([]Entry, error) {
	entries, err := s.repo.GetEvents(ctx, Filter{RegearID: regearID, Limit: DefaultHistoryLimit})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgHistoryFailed, err)
	}

	out := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if e := entries[i]; e.GuildID == "" || e.GuildID == guildID {
			out = append(out, e)
		}
	}
	return out, nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
