// Package inventory manages a guild's shared gear stock.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
	"github.com/osse101/PhoenixBot_Go/internal/repository"
	"github.com/osse101/PhoenixBot_Go/internal/validation"
)

// AddRequest is one stock increment
type AddRequest struct {
	GuildID  string `validate:"required"`
	Name     string `validate:"required,max=100"`
	Slot     string `validate:"required,slot"`
	Tier     string `validate:"required,tier"`
	Quantity int    `validate:"min=1,max=10000"`
	Notes    string `validate:"max=500"`
}

// Service adds and lists stock
type Service struct {
	repo repository.Inventory
}

// NewService creates an inventory service
func NewService(repo repository.Inventory) *Service {
	return &Service{repo: repo}
}

// Add validates req, canonicalizes its tier and increments the stock record
func (s *Service) Add(ctx context.Context, req AddRequest) (*domain.InventoryItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Notes = strings.TrimSpace(req.Notes)
	req.Slot = strings.ToLower(strings.TrimSpace(req.Slot))

	if err := validation.Get().Struct(req); err != nil {
		return nil, err
	}
	if strings.ContainsAny(req.Name, "\r\n") {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgNameMultiline)
	}
	if req.Name == regear.NoneValue {
		return nil, fmt.Errorf("%w: "+ErrMsgNameReserved, domain.ErrValidation, req.Name)
	}

	item, err := s.repo.AddInventory(ctx, domain.InventoryItem{
		GuildID:        req.GuildID,
		Name:           req.Name,
		Slot:           domain.Slot(req.Slot),
		TierEquivalent: domain.ParseTierEquivalent(req.Tier),
		Quantity:       req.Quantity,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAddFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgStockAdded,
		"guild_id", item.GuildID, "item", item.Name, "slot", item.Slot, "tier", item.TierEquivalent,
		"added", req.Quantity, "quantity", item.Quantity)
	return item, nil
}

// List returns stock matching filter, sorted by tier then name. A free-form
// tier in the filter is canonicalized first.
func (s *Service) List(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	if filter.Tier != "" {
		filter.Tier = domain.ParseTierEquivalent(filter.Tier)
	}
	items, err := s.repo.QueryInventory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	domain.SortInventoryItems(items)
	return items, nil
}

// LowStock returns items below domain.LowStockThreshold
func (s *Service) LowStock(ctx context.Context, guildID, tier string) ([]domain.InventoryItem, error) {
	items, err := s.List(ctx, domain.InventoryFilter{GuildID: guildID, Tier: tier})
	if err != nil {
		return nil, err
	}
	low := items[:0]
	for _, item := range items {
		if item.Quantity < domain.LowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}
