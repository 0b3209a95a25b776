package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhoenixBot_Go/internal/database/generated"
	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// RegearRepository implements repository.Regear for PostgreSQL
type RegearRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewRegearRepository creates a new RegearRepository
func NewRegearRepository(db *pgxpool.Pool) *RegearRepository {
	return &RegearRepository{db: db, q: generated.New(db)}
}

// CreateReservation persists a new reservation
func (r *RegearRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	id, err := uuid.Parse(res.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidRegearID, err)
	}

	items, err := json.Marshal(res.Items)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalItems, err)
	}
	surfaces, err := json.Marshal(res.Surfaces)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalSurfaces, err)
	}

	_, err = r.db.Exec(ctx, SQLInsertReservation,
		id, res.GuildID, res.IssuerID, res.RecipientID, items, res.SelectedTier,
		string(res.Status), res.ReservedAt, surfaces)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertReservation, err)
	}
	return nil
}

// GetReservation loads a reservation by id
func (r *RegearRepository) GetReservation(ctx context.Context, regearID string) (*domain.Reservation, error) {
	id, err := parseRegearID(regearID)
	if err != nil {
		return nil, err
	}

	res, err := scanReservation(r.db.QueryRow(ctx, SQLGetReservation, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, regearID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetReservation, err)
	}
	return res, nil
}

// TransitionReservation moves the reservation to `to` while its status is one of `from`
func (r *RegearRepository) TransitionReservation(ctx context.Context, regearID string, from []domain.RegearStatus, to domain.RegearStatus, at time.Time) (*domain.Reservation, error) {
	id, err := parseRegearID(regearID)
	if err != nil {
		return nil, err
	}

	res, err := scanReservation(r.db.QueryRow(ctx, SQLTransitionReservation, id, string(to), at, statusStrings(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, explainNoTransition(ctx, r.db, id, to)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToTransitionReservation, err)
	}
	return res, nil
}

// CompleteReservation marks the reservation COMPLETED and decrements every
// reserved item in one transaction. The status update runs first so that a
// concurrent completion blocks on the row lock and then finds a terminal status.
func (r *RegearRepository) CompleteReservation(ctx context.Context, regearID string, at time.Time) (*domain.Reservation, error) {
	id, err := parseRegearID(regearID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)
	queries := r.q.WithTx(tx)

	from := statusStrings(domain.TransitionSources(domain.EventComplete))
	res, err := scanReservation(tx.QueryRow(ctx, SQLTransitionReservation, id, string(domain.RegearCompleted), at, from))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, explainNoTransition(ctx, tx, id, domain.RegearCompleted)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToTransitionReservation, err)
	}

	for _, item := range res.Items {
		ok, err := decrementIfSufficient(ctx, queries, item.Key(res.GuildID), item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.FromContext(ctx).Info(LogMsgCompletionShortfall,
				"regear_id", regearID, "item", item.Name, "slot", item.Slot, "tier", item.TierEquivalent)
			return nil, fmt.Errorf("%w: %s (%s %s) needs %d",
				domain.ErrInsufficientStock, item.Name, item.Slot, item.TierEquivalent, item.Quantity)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return res, nil
}

// UpdateReservationSurfaces stores the message references of a reservation
func (r *RegearRepository) UpdateReservationSurfaces(ctx context.Context, regearID string, surfaces domain.Surfaces) error {
	id, err := parseRegearID(regearID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(surfaces)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalSurfaces, err)
	}

	tag, err := r.db.Exec(ctx, SQLUpdateReservationSurfaces, id, data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateSurfaces, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, regearID)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// explainNoTransition distinguishes an unknown reservation from one whose
// status did not allow the update
func explainNoTransition(ctx context.Context, db querier, id uuid.UUID, to domain.RegearStatus) error {
	var status string
	err := db.QueryRow(ctx, SQLGetReservationStatus, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetReservation, err)
	}

	logger.FromContext(ctx).Debug(LogMsgTransitionConflict, "regear_id", id.String(), "status", status, "target", to)
	return fmt.Errorf("%w: reservation is %s, cannot move to %s", domain.ErrInvalidTransition, status, to)
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		res      domain.Reservation
		status   string
		items    []byte
		surfaces []byte
	)
	if err := row.Scan(&res.ID, &res.GuildID, &res.IssuerID, &res.RecipientID, &items, &res.SelectedTier,
		&status, &res.ReservedAt, &res.CompletedAt, &res.CancelledAt, &surfaces); err != nil {
		return nil, err
	}
	res.Status = domain.RegearStatus(status)

	if err := json.Unmarshal(items, &res.Items); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalItems, err)
	}
	if len(surfaces) > 0 {
		if err := json.Unmarshal(surfaces, &res.Surfaces); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalSurfaces, err)
		}
	}
	return &res, nil
}
