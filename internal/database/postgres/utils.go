package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseRegearID validates a regear id. Malformed ids cannot exist in the
// table, so they are reported as not found.
func parseRegearID(regearID string) (uuid.UUID, error) {
	id, err := uuid.Parse(regearID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", domain.ErrReservationNotFound, ErrMsgInvalidRegearID, regearID)
	}
	return id, nil
}

// statusStrings converts statuses for an ANY($n::text[]) parameter
func statusStrings(statuses []domain.RegearStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
