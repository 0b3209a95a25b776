package regear

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PhoenixBot_Go/internal/concurrency"
	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// ReserveRequest is a confirmed wizard selection
type ReserveRequest struct {
	GuildID   string
	ChannelID string
	IssuerID  string
	Selection Selection
}

// Coordinator turns confirmed selections into reservations and keeps every
// view of a reservation in step with the ledger. The ledger is the source of
// truth: view failures are logged and published, never returned.
type Coordinator struct {
	ledger *Ledger
	bus    event.Bus
	views  []View

	// serializes Reserve and Act per reservation so view syncs never interleave
	locks *concurrency.LockManager
}

// NewCoordinator creates a coordinator fanning out to views
func NewCoordinator(ledger *Ledger, bus event.Bus, views ...View) *Coordinator {
	return &Coordinator{ledger: ledger, bus: bus, views: views, locks: concurrency.NewLockManager()}
}

// Reserve persists the selection as a RESERVED reservation and opens its views
func (c *Coordinator) Reserve(ctx context.Context, req ReserveRequest) (*domain.Reservation, error) {
	log := logger.FromContext(ctx)

	items := req.Selection.ReservationItems()
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptySelection)
	}

	res, err := c.ledger.Create(ctx, domain.NewReservation{
		GuildID:      req.GuildID,
		IssuerID:     req.IssuerID,
		RecipientID:  req.Selection.RecipientID,
		Items:        items,
		SelectedTier: req.Selection.Tier,
	})
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgReservationCreated, "regear_id", res.ID, "recipient_id", res.RecipientID, "items", len(res.Items))

	// a transition on the new id waits until its views are stored
	unlock := c.locks.Lock(res.ID)
	defer unlock()

	origin := Origin{ChannelID: req.ChannelID}
	opened := false
	for _, v := range c.views {
		ref, err := v.Open(ctx, res, origin)
		if err != nil {
			c.surfaceFailed(ctx, res.ID, v.Kind(), OpOpen, err)
		}
		if ref != nil {
			res.Surfaces.Set(v.Kind(), ref)
			opened = true
		}
	}
	if opened {
		c.saveSurfaces(ctx, res)
	}

	c.publish(ctx, event.NewRegearEvent(res))
	return res, nil
}

// Act applies a lifecycle event on behalf of actor and syncs every view.
// A rejected action changes nothing and is returned to the caller.
func (c *Coordinator) Act(ctx context.Context, regearID string, ev domain.RegearEvent, actor Actor) (*domain.Reservation, error) {
	log := logger.FromContext(ctx)

	unlock := c.locks.Lock(regearID)
	defer unlock()

	res, err := c.ledger.Transition(ctx, regearID, ev, actor)
	if err != nil {
		reason := RejectionReason(err)
		log.Info(LogMsgTransitionRejected, "regear_id", regearID, "event", ev, "actor_id", actor.UserID, "reason", reason, "error", err)
		c.publish(ctx, event.NewRegearRejectedEvent(regearID, ev, reason))
		return nil, err
	}
	log.Info(LogMsgTransitionApplied, "regear_id", res.ID, "event", ev, "status", res.Status, "actor_id", actor.UserID)

	changed := false
	for _, v := range c.views {
		kind := v.Kind()
		current := res.Surfaces.Get(kind)
		ref, err := v.Sync(ctx, res, current)
		if err != nil {
			c.surfaceFailed(ctx, res.ID, kind, OpSync, err)
		}
		if !sameRef(current, ref) {
			res.Surfaces.Set(kind, ref)
			changed = true
		}
	}
	if changed {
		c.saveSurfaces(ctx, res)
	}

	c.publish(ctx, event.NewRegearEvent(res))
	return res, nil
}

// Get returns a reservation from the ledger
func (c *Coordinator) Get(ctx context.Context, regearID string) (*domain.Reservation, error) {
	return c.ledger.Get(ctx, regearID)
}

// RejectionReason classifies a refused action for metrics and logs
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptySelection):
		return ReasonValidation
	case errors.Is(err, domain.ErrPermissionDenied):
		return ReasonPermissionDenied
	case errors.Is(err, domain.ErrReservationNotFound):
		return ReasonNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return ReasonInvalidTransition
	case errors.Is(err, domain.ErrInsufficientStock):
		return ReasonInsufficientStock
	}
	return ReasonError
}

func (c *Coordinator) saveSurfaces(ctx context.Context, res *domain.Reservation) {
	if err := c.ledger.SaveSurfaces(ctx, res.ID, res.Surfaces); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSurfacesSaveFailed, "regear_id", res.ID, "error", err)
	}
}

func (c *Coordinator) surfaceFailed(ctx context.Context, regearID string, kind domain.SurfaceKind, op string, err error) {
	logger.FromContext(ctx).Warn(LogMsgSurfaceFailed, "regear_id", regearID, "surface", kind, "operation", op, "error", err)
	c.publish(ctx, event.NewSurfaceFailedEvent(regearID, kind, op, err))
}

func (c *Coordinator) publish(ctx context.Context, evt event.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func sameRef(a, b *domain.SurfaceRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
