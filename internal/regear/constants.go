package regear

// Wizard control custom ids
const (
	WizardPrefix       = "regear_wizard:"
	CustomIDTier       = WizardPrefix + "tier"
	CustomIDSlotPrefix = WizardPrefix + "slot:"
	CustomIDNext       = WizardPrefix + "next"
	CustomIDBack       = WizardPrefix + "back"
	CustomIDConfirm    = WizardPrefix + "confirm"
	CustomIDCancel     = WizardPrefix + "cancel"
)

// Reservation control custom ids are ReservationPrefix + verb + ":" + regear id
const (
	ReservationPrefix = "regear:"
	VerbComplete      = "complete"
	VerbCancel        = "cancel"
	VerbPickup        = "pickup"
)

// Wizard layout
const (
	TotalPages = 3

	// NoneValue is the select value that clears a slot
	NoneValue = "__none__"

	// MaxItemOptions leaves room for the none option in a slot select
	MaxItemOptions = 24
)

// Panel text
const (
	TitleWizard         = "Regear Request"
	TitleSubmitted      = "Regear Request Submitted"
	TitleWizardCanceled = "Regear Request Cancelled"
	TitleReservation    = "Regear Reservation"
	TitleRecipient      = "Your Regear"
	TitleAuditPrefix    = "Regear "

	FieldSelectedItems = "Selected Items"
	FieldItems         = "Items"

	TextNothingSelected = "Nothing selected yet"
	TextTierUnset       = "not selected"
	TextWizardCanceled  = "No reservation was created."
	TextNoStock         = "No stock"

	HintPage1 = "Choose the tier to regear, then press Next."
	HintPage2 = "Pick armor pieces. Choose None to clear a slot."
	HintPage3 = "Pick weapons, then press Confirm."
)

// Audit export
const (
	AuditDateLayout     = "2006-01-02"
	AuditCSVContentType = "text/csv"
)

// View operations, used in logs and failure metrics
const (
	OpOpen = "open"
	OpSync = "sync"
)

// Rejection reasons, used in metrics labels
const (
	ReasonValidation        = "validation"
	ReasonPermissionDenied  = "permission_denied"
	ReasonNotFound          = "not_found"
	ReasonInvalidTransition = "invalid_transition"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonError             = "error"
)

// Error messages
const (
	ErrMsgTierOnlyOnFirstPage = "the tier can only be changed on step 1"
	ErrMsgTierRequired        = "choose a tier first"
	ErrMsgTierNoStock         = "no stock at tier %s"
	ErrMsgSlotNotOnPage       = "slot %s is not on step %d"
	ErrMsgMalformedChoice     = "malformed slot choice for %s: %q is not in stock at %s"
	ErrMsgConfirmOnlyLastPage = "confirm is only available on the last step"
	ErrMsgNoNextPage          = "already on the last step"
	ErrMsgNoPreviousPage      = "already on the first step"
	ErrMsgRecipientMissing    = "this request lost its recipient, start again with /regear"
	ErrMsgUnknownControl      = "unknown control %q"
	ErrMsgMissingValue        = "no value selected"
	ErrMsgOnlyRecipient       = "only the recipient can mark a regear as picked up"
	ErrMsgOnlyIssuer          = "only the issuer or a regear officer can %s this regear"
)

// Log messages
const (
	LogMsgReservationCreated = "Regear reserved"
	LogMsgTransitionApplied  = "Regear transition applied"
	LogMsgTransitionRejected = "Regear transition rejected"
	LogMsgSurfaceFailed      = "Regear view operation failed"
	LogMsgSurfacesSaveFailed = "Failed to store regear view references"
	LogMsgPublishFailed      = "Failed to publish regear event"
)
