package repository

import (
	"context"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// Inventory defines the interface for guild gear stock persistence
type Inventory interface {
	// QueryInventory returns matching items, unsorted
	QueryInventory(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error)

	// AddInventory inserts the item or increments the quantity of an existing record
	AddInventory(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)

	// DecrementIfSufficient atomically removes amount when at least amount is in stock.
	// Returns false without changing anything otherwise.
	DecrementIfSufficient(ctx context.Context, key domain.ItemKey, amount int) (bool, error)
}
