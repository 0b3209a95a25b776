package inventory

// Error messages
const (
	ErrMsgNameMultiline = "item name must be a single line"
	ErrMsgNameReserved  = "item name %q is reserved"
	ErrMsgAddFailed     = "failed to add inventory"
	ErrMsgQueryFailed   = "failed to query inventory"
)

// Log messages
const (
	LogMsgStockAdded = "Inventory stock added"
)
