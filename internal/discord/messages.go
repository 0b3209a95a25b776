package discord

// User-facing messages
const (
	MsgPermissionDenied  = "🔒 **Not Allowed**\nYou don't have permission to do that."
	MsgRegearNotFound    = "❓ **Regear Not Found**\nCheck the regear ID and try again."
	MsgInventoryEmpty    = "📦 **No Stock**\nThe guild inventory has nothing in stock. Add gear with `/inventory add`."
	MsgInvalidTransition = "⚠️ **Already Handled**\nThis regear can no longer be changed."
	MsgInsufficientStock = "📦 **Not Enough Stock**\nOne or more reserved items are no longer in stock. The regear is still open."
	MsgGuildOnly         = "This command can only be used in a server."
	MsgGenericError      = "❌ Something went wrong."
	MsgSessionLost       = "⌛ This request is no longer available. Start again with `/regear`."
	MsgAlreadySubmitted  = "⏳ **Already Submitted**\nThis regear request was already sent."
)

// Embed titles
const (
	TitleInventory       = "📦 Guild Inventory"
	TitleLowStock        = "📉 Low Stock"
	TitleInventoryAdded  = "📦 Stock Added"
	TitleRegearConfig    = "⚙️ Regear Settings"
	TextInventoryEmpty   = "No matching stock."
	TextNoLowStock       = "Everything is stocked above %d."
	TextInventoryOverrun = "…and %d more"
)

// Command and option names
const (
	CommandRegear       = "regear"
	CommandRegearStatus = "regear-status"
	CommandInventory    = "inventory"
	CommandRegearConfig = "regear-config"

	SubcommandAdd          = "add"
	SubcommandList         = "list"
	SubcommandStock        = "stock"
	SubcommandAuditChannel = "audit-channel"
	SubcommandGrant        = "grant"
	SubcommandRevoke       = "revoke"

	OptionRecipient = "recipient"
	OptionID        = "id"
	OptionSlot      = "slot"
	OptionName      = "name"
	OptionTier      = "tier"
	OptionQuantity  = "quantity"
	OptionNotes     = "notes"
	OptionChannel   = "channel"
	OptionRole      = "role"
)

// Interaction kinds and outcomes, used as metric labels
const (
	KindCommand      = "command"
	KindComponent    = "component"
	KindAutocomplete = "autocomplete"

	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Log messages
const (
	LogMsgRespondFailed       = "Failed to respond to interaction"
	LogMsgFollowupFailed      = "Failed to send followup message"
	LogMsgCommandFailed       = "Command failed"
	LogMsgComponentFailed     = "Component action failed"
	LogMsgUnknownComponent    = "Unhandled component interaction"
	LogMsgDirectMessageFailed = "Direct message refused, falling back to channel mention"
	LogMsgWizardConfirmed     = "Regear wizard confirmed"
	LogMsgDuplicateConfirm    = "Ignoring repeated confirm on a submitted wizard"
	LogMsgWizardRestoreFailed = "Failed to restore wizard after a rejected confirm"
)
