package domain

// Permission actions understood by the permission collaborator
const (
	PermissionRegear    = "regear"
	PermissionInventory = "inventory"
)

// Regear limits
const (
	// MaxRegearItems is one item per tracked slot
	MaxRegearItems = 5

	// DefaultReservedQuantity is the amount reserved per chosen slot
	DefaultReservedQuantity = 1

	// MaxItemNameLength matches the platform limit for select option values
	MaxItemNameLength = 100

	// MaxInventoryAdd caps a single stock increment
	MaxInventoryAdd = 10000

	// LowStockThreshold marks items worth restocking
	LowStockThreshold = 5
)
