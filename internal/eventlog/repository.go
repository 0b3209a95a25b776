package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one persisted lifecycle event
type Entry struct {
	ID        int64             `json:"id"`
	EventType string            `json:"event_type"`
	RegearID  string            `json:"regear_id"`
	GuildID   string            `json:"guild_id,omitempty"`
	Payload   json.RawMessage   `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Filter narrows GetEvents. Zero fields match everything.
type Filter struct {
	RegearID  string
	GuildID   string
	EventType string
	Since     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an entry
	LogEvent(ctx context.Context, entry Entry) error

	// GetEvents returns entries matching filter, newest first
	GetEvents(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents removes entries older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
