package domain

import (
	"fmt"
	"time"
)

// RegearStatus is the lifecycle state of a reservation
type RegearStatus string

const (
	RegearReserved  RegearStatus = "RESERVED"
	RegearPickedUp  RegearStatus = "PICKED_UP"
	RegearCompleted RegearStatus = "COMPLETED"
	RegearCancelled RegearStatus = "CANCELLED"
)

// IsTerminal reports whether no transition can leave s
func (s RegearStatus) IsTerminal() bool {
	return s == RegearCompleted || s == RegearCancelled
}

// RegearEvent is an action applied to a reservation
type RegearEvent string

const (
	EventPickedUp RegearEvent = "picked_up"
	EventComplete RegearEvent = "complete"
	EventCancel   RegearEvent = "cancel"
)

var regearTransitions = map[RegearEvent]struct {
	from []RegearStatus
	to   RegearStatus
}{
	EventPickedUp: {from: []RegearStatus{RegearReserved}, to: RegearPickedUp},
	EventComplete: {from: []RegearStatus{RegearReserved, RegearPickedUp}, to: RegearCompleted},
	EventCancel:   {from: []RegearStatus{RegearReserved, RegearPickedUp}, to: RegearCancelled},
}

// TransitionSources lists the statuses from which event is legal
func TransitionSources(event RegearEvent) []RegearStatus {
	t, ok := regearTransitions[event]
	if !ok {
		return nil
	}
	out := make([]RegearStatus, len(t.from))
	copy(out, t.from)
	return out
}

// NextStatus applies event to current
func NextStatus(current RegearStatus, event RegearEvent) (RegearStatus, error) {
	t, ok := regearTransitions[event]
	if !ok {
		return current, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, event)
	}
	for _, from := range t.from {
		if current == from {
			return t.to, nil
		}
	}
	return current, fmt.Errorf("%w: cannot %s a %s reservation", ErrInvalidTransition, event, current)
}

// ReservationItem is one reserved slot
type ReservationItem struct {
	Slot           Slot   `json:"slot" validate:"required,slot"`
	Name           string `json:"name" validate:"required,max=100"`
	TierEquivalent string `json:"tier_equivalent" validate:"required"`
	Quantity       int    `json:"quantity" validate:"min=1"`
}

// Key returns the inventory identity the item draws from
func (i ReservationItem) Key(guildID string) ItemKey {
	return ItemKey{GuildID: guildID, Name: i.Name, Slot: i.Slot, TierEquivalent: i.TierEquivalent}
}

// SurfaceKind names one of the rendered views of a reservation
type SurfaceKind string

const (
	SurfaceIssuer    SurfaceKind = "issuer"
	SurfaceRecipient SurfaceKind = "recipient"
	SurfaceAudit     SurfaceKind = "audit"
)

// SurfaceRef addresses a rendered message
type SurfaceRef struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// Surfaces holds the message references a reservation produced
type Surfaces struct {
	Issuer    *SurfaceRef `json:"issuer,omitempty"`
	Recipient *SurfaceRef `json:"recipient,omitempty"`
	Audit     *SurfaceRef `json:"audit,omitempty"`
}

// Get returns the reference for kind
func (s Surfaces) Get(kind SurfaceKind) *SurfaceRef {
	switch kind {
	case SurfaceIssuer:
		return s.Issuer
	case SurfaceRecipient:
		return s.Recipient
	case SurfaceAudit:
		return s.Audit
	}
	return nil
}

// Set replaces the reference for kind
func (s *Surfaces) Set(kind SurfaceKind, ref *SurfaceRef) {
	switch kind {
	case SurfaceIssuer:
		s.Issuer = ref
	case SurfaceRecipient:
		s.Recipient = ref
	case SurfaceAudit:
		s.Audit = ref
	}
}

// Reservation is a regear transaction and its audit record
type Reservation struct {
	ID           string            `json:"regear_id"`
	GuildID      string            `json:"guild_id"`
	IssuerID     string            `json:"issuer_id"`
	RecipientID  string            `json:"recipient_id"`
	Items        []ReservationItem `json:"items"`
	SelectedTier string            `json:"selected_tier"`
	Status       RegearStatus      `json:"status"`
	ReservedAt   time.Time         `json:"reserved_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	CancelledAt  *time.Time        `json:"cancelled_at,omitempty"`
	Surfaces     Surfaces          `json:"surfaces"`
}

// Item returns the reserved item for slot, if any
func (r *Reservation) Item(slot Slot) (ReservationItem, bool) {
	for _, item := range r.Items {
		if item.Slot == slot {
			return item, true
		}
	}
	return ReservationItem{}, false
}

// NewReservation carries the fields needed to create a reservation
type NewReservation struct {
	GuildID      string            `validate:"required"`
	IssuerID     string            `validate:"required"`
	RecipientID  string            `validate:"required"`
	Items        []ReservationItem `validate:"required,min=1,max=5,unique=Slot,dive"`
	SelectedTier string            `validate:"required"`
}
