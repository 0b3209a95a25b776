package regear

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/repository"
	"github.com/osse101/PhoenixBot_Go/internal/validation"
)

// Ledger owns reservation records and their state machine
type Ledger struct {
	repo repository.Regear
	auth *Authorizer
	now  func() time.Time
}

// NewLedger creates a ledger persisting through repo
func NewLedger(repo repository.Regear, auth *Authorizer) *Ledger {
	return &Ledger{repo: repo, auth: auth, now: time.Now}
}

// Create validates and persists a RESERVED reservation
func (l *Ledger) Create(ctx context.Context, req domain.NewReservation) (*domain.Reservation, error) {
	if err := validation.Get().Struct(req); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		ID:           uuid.NewString(),
		GuildID:      req.GuildID,
		IssuerID:     req.IssuerID,
		RecipientID:  req.RecipientID,
		Items:        req.Items,
		SelectedTier: req.SelectedTier,
		Status:       domain.RegearReserved,
		ReservedAt:   l.now().UTC(),
	}
	if err := l.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns the reservation or domain.ErrReservationNotFound
func (l *Ledger) Get(ctx context.Context, regearID string) (*domain.Reservation, error) {
	return l.repo.GetReservation(ctx, regearID)
}

// Transition applies event on behalf of actor. The persisted update is
// conditional on the status still allowing the event, so a lost race
// surfaces as domain.ErrInvalidTransition.
func (l *Ledger) Transition(ctx context.Context, regearID string, event domain.RegearEvent, actor Actor) (*domain.Reservation, error) {
	res, err := l.repo.GetReservation(ctx, regearID)
	if err != nil {
		return nil, err
	}

	if err := l.auth.Authorize(ctx, res, event, actor); err != nil {
		return nil, err
	}

	next, err := domain.NextStatus(res.Status, event)
	if err != nil {
		return nil, err
	}

	at := l.now().UTC()
	if event == domain.EventComplete {
		return l.repo.CompleteReservation(ctx, regearID, at)
	}
	return l.repo.TransitionReservation(ctx, regearID, domain.TransitionSources(event), next, at)
}

// SaveSurfaces stores the view references of a reservation
func (l *Ledger) SaveSurfaces(ctx context.Context, regearID string, surfaces domain.Surfaces) error {
	return l.repo.UpdateReservationSurfaces(ctx, regearID, surfaces)
}
