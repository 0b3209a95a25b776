package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PhoenixBot_Go/internal/database/generated"
	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	q *generated.Queries
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{q: generated.New(db)}
}

// QueryInventory returns the items matching filter
func (r *InventoryRepository) QueryInventory(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	rows, err := r.q.QueryInventory(ctx, generated.QueryInventoryParams{
		GuildID:     filter.GuildID,
		Slot:        string(filter.Slot),
		Tier:        filter.Tier,
		NameFilter:  filter.NameFilter,
		InStockOnly: filter.InStockOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryInventory, err)
	}

	items := make([]domain.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.InventoryItem{
			GuildID:        row.GuildID,
			Name:           row.ItemName,
			Slot:           domain.Slot(row.Slot),
			TierEquivalent: row.TierEquivalent,
			Quantity:       int(row.Quantity),
			Notes:          row.Notes,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return items, nil
}

// AddInventory inserts the item or increments the existing record
func (r *InventoryRepository) AddInventory(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	qty, err := toQuantity(item.Quantity)
	if err != nil {
		return nil, err
	}
	row, err := r.q.UpsertInventoryItem(ctx, generated.UpsertInventoryItemParams{
		GuildID:        item.GuildID,
		ItemName:       item.Name,
		Slot:           string(item.Slot),
		TierEquivalent: item.TierEquivalent,
		Quantity:       qty,
		Notes:          item.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertInventory, err)
	}
	return &domain.InventoryItem{
		GuildID:        row.GuildID,
		Name:           row.ItemName,
		Slot:           domain.Slot(row.Slot),
		TierEquivalent: row.TierEquivalent,
		Quantity:       int(row.Quantity),
		Notes:          row.Notes,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

// DecrementIfSufficient removes amount only while at least amount is in stock
func (r *InventoryRepository) DecrementIfSufficient(ctx context.Context, key domain.ItemKey, amount int) (bool, error) {
	return decrementIfSufficient(ctx, r.q, key, amount)
}

func decrementIfSufficient(ctx context.Context, q *generated.Queries, key domain.ItemKey, amount int) (bool, error) {
	qty, err := toQuantity(amount)
	if err != nil {
		return false, err
	}
	affected, err := q.DecrementIfSufficient(ctx, generated.DecrementIfSufficientParams{
		Amount:         qty,
		GuildID:        key.GuildID,
		ItemName:       key.Name,
		Slot:           string(key.Slot),
		TierEquivalent: key.TierEquivalent,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDecrementInventory, err)
	}
	return affected == 1, nil
}

// toQuantity narrows n to the INTEGER quantity column
func toQuantity(n int) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d is out of range", domain.ErrInvalidQty, n)
	}
	return int32(n), nil
}
