package repository

import (
	"context"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// Regear defines the interface for the reservation ledger
type Regear interface {
	CreateReservation(ctx context.Context, res *domain.Reservation) error

	// GetReservation returns domain.ErrReservationNotFound for unknown ids
	GetReservation(ctx context.Context, regearID string) (*domain.Reservation, error)

	// TransitionReservation moves the reservation to `to` only while its status is one of `from`.
	// Returns domain.ErrInvalidTransition when the status no longer matches.
	TransitionReservation(ctx context.Context, regearID string, from []domain.RegearStatus, to domain.RegearStatus, at time.Time) (*domain.Reservation, error)

	// CompleteReservation marks the reservation COMPLETED and decrements every reserved item
	// in one atomic operation. Returns domain.ErrInvalidTransition when the reservation is no
	// longer open and domain.ErrInsufficientStock when any item is short; in both cases
	// nothing changes.
	CompleteReservation(ctx context.Context, regearID string, at time.Time) (*domain.Reservation, error)

	UpdateReservationSurfaces(ctx context.Context, regearID string, surfaces domain.Surfaces) error
}
