package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgValidation      = "invalid request"
	ErrMsgEmptySelection  = "select at least one item before confirming"
	ErrMsgInvalidSlot     = "invalid slot"
	ErrMsgInvalidQuantity = "quantity must be positive"

	// Permission errors
	ErrMsgPermissionDenied = "permission denied"

	// Lookup errors
	ErrMsgReservationNotFound = "reservation not found"
	ErrMsgGuildNotFound       = "guild not found"
	ErrMsgItemNotFound        = "item not found"
	ErrMsgInventoryEmpty      = "inventory is empty"

	// Reservation lifecycle errors
	ErrMsgInvalidTransition = "invalid transition"
	ErrMsgInsufficientStock = "insufficient stock"

	// Surface errors
	ErrMsgDeliveryFailure = "delivery failure"
	ErrMsgSurfaceGone     = "message or channel no longer exists"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors
	ErrValidation     = errors.New(ErrMsgValidation)
	ErrEmptySelection = errors.New(ErrMsgEmptySelection)
	ErrInvalidSlot    = errors.New(ErrMsgInvalidSlot)
	ErrInvalidQty     = errors.New(ErrMsgInvalidQuantity)

	// Permission errors
	ErrPermissionDenied = errors.New(ErrMsgPermissionDenied)

	// Lookup errors
	ErrReservationNotFound = errors.New(ErrMsgReservationNotFound)
	ErrGuildNotFound       = errors.New(ErrMsgGuildNotFound)
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)
	ErrInventoryEmpty      = errors.New(ErrMsgInventoryEmpty)

	// Reservation lifecycle errors
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)

	// Surface errors
	ErrDeliveryFailure = errors.New(ErrMsgDeliveryFailure)
	ErrSurfaceGone     = errors.New(ErrMsgSurfaceGone)
)

// IsUserFacing reports whether err is one the acting user should see verbatim
// rather than a generic failure notice.
func IsUserFacing(err error) bool {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmptySelection),
		errors.Is(err, ErrInvalidSlot),
		errors.Is(err, ErrInvalidQty),
		errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrReservationNotFound),
		errors.Is(err, ErrGuildNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrInventoryEmpty),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInsufficientStock):
		return true
	}
	return false
}
