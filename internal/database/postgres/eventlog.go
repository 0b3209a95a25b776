package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhoenixBot_Go/internal/database/generated"
	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db, q: generated.New(db)}
}

// LogEvent stores an event in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	var metadataJSON []byte
	if entry.Metadata != nil {
		var err error
		if metadataJSON, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEvent, err)
		}
	}

	err := r.q.InsertRegearEvent(ctx, generated.InsertRegearEventParams{
		EventType: entry.EventType,
		RegearID:  entry.RegearID,
		GuildID:   entry.GuildID,
		Payload:   []byte(entry.Payload),
		Metadata:  metadataJSON,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}
	return nil
}

// GetEvents retrieves events based on filter criteria
func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, event_type, regear_id, COALESCE(guild_id, ''), payload, metadata, created_at
		FROM regear_events
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.RegearID != "" {
		fmt.Fprintf(&queryBuilder, " AND regear_id = $%d", argNum)
		args = append(args, filter.RegearID)
		argNum++
	}

	if filter.GuildID != "" {
		fmt.Fprintf(&queryBuilder, " AND guild_id = $%d", argNum)
		args = append(args, filter.GuildID)
		argNum++
	}

	if filter.EventType != "" {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, filter.EventType)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CleanupOldEvents removes events older than the specified number of days
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 0 || retentionDays > math.MaxInt32 {
		return 0, fmt.Errorf("%s: retention of %d days is out of range", ErrMsgFailedToCleanupEvents, retentionDays)
	}
	deleted, err := r.q.CleanupRegearEvents(ctx, int32(retentionDays))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return deleted, nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Entry, error) {
	var events []eventlog.Entry

	for rows.Next() {
		var evt eventlog.Entry
		var payloadJSON, metadataJSON []byte

		if err := rows.Scan(
			&evt.ID,
			&evt.EventType,
			&evt.RegearID,
			&evt.GuildID,
			&payloadJSON,
			&metadataJSON,
			&evt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanEvent, err)
		}

		evt.Payload = json.RawMessage(payloadJSON)
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanEvent, err)
			}
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}

	return events, nil
}
