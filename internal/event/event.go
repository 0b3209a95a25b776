package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string            `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type              `json:"type"`
	Payload  interface{}       `json:"payload"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Regear lifecycle event types
const (
	RegearReserved  Type = "regear.reserved"
	RegearPickedUp  Type = "regear.picked_up"
	RegearCompleted Type = "regear.completed"
	RegearCancelled Type = "regear.cancelled"

	// RegearRejected is published when a lifecycle action is refused
	RegearRejected Type = "regear.rejected"

	// SurfaceFailed is published when a view could not be delivered or updated
	SurfaceFailed Type = "regear.surface_failed"
)

// RegearTypes lists the lifecycle event types in publication order
var RegearTypes = []Type{RegearReserved, RegearPickedUp, RegearCompleted, RegearCancelled}

// TypeForStatus maps a reservation status to the event announcing it
func TypeForStatus(status domain.RegearStatus) Type {
	switch status {
	case domain.RegearPickedUp:
		return RegearPickedUp
	case domain.RegearCompleted:
		return RegearCompleted
	case domain.RegearCancelled:
		return RegearCancelled
	default:
		return RegearReserved
	}
}

// RegearPayloadV1 is the typed payload for regear lifecycle events
type RegearPayloadV1 struct {
	RegearID    string   `json:"regear_id"`
	GuildID     string   `json:"guild_id"`
	IssuerID    string   `json:"issuer_id"`
	RecipientID string   `json:"recipient_id"`
	Tier        string   `json:"tier"`
	Slots       []string `json:"slots"`
	Status      string   `json:"status"`
	Timestamp   int64    `json:"timestamp"`
}

// RegearRejectedPayloadV1 describes a refused lifecycle action
type RegearRejectedPayloadV1 struct {
	RegearID string `json:"regear_id"`
	Event    string `json:"event"`
	Reason   string `json:"reason"`
}

// SurfaceFailedPayloadV1 describes a failed view delivery
type SurfaceFailedPayloadV1 struct {
	RegearID  string `json:"regear_id"`
	Surface   string `json:"surface"`
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// NewRegearEvent creates a lifecycle event for the reservation's current status
func NewRegearEvent(res *domain.Reservation) Event {
	slots := make([]string, 0, len(res.Items))
	for _, item := range res.Items {
		slots = append(slots, string(item.Slot))
	}

	return Event{
		Version: EventSchemaVersion,
		Type:    TypeForStatus(res.Status),
		Payload: RegearPayloadV1{
			RegearID:    res.ID,
			GuildID:     res.GuildID,
			IssuerID:    res.IssuerID,
			RecipientID: res.RecipientID,
			Tier:        res.SelectedTier,
			Slots:       slots,
			Status:      string(res.Status),
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]string{"guild_id": res.GuildID},
	}
}

// NewRegearRejectedEvent creates an event for a refused action
func NewRegearRejectedEvent(regearID string, ev domain.RegearEvent, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RegearRejected,
		Payload: RegearRejectedPayloadV1{RegearID: regearID, Event: string(ev), Reason: reason},
	}
}

// NewSurfaceFailedEvent creates an event for a failed view operation
func NewSurfaceFailedEvent(regearID string, kind domain.SurfaceKind, operation string, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SurfaceFailed,
		Payload: SurfaceFailedPayloadV1{
			RegearID:  regearID,
			Surface:   string(kind),
			Operation: operation,
			Error:     err.Error(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
