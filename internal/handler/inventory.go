package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// StockLister lists a guild's stock
type StockLister interface {
	List(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error)
}

// HandleListInventory returns a guild's stock, filtered by the optional
// slot, tier, name and in_stock query parameters
// @Summary List inventory
// @Description List the regear stock of a guild
// @Tags inventory
// @Produce json
// @Security ApiKeyAuth
// @Param guildID path string true "Guild ID"
// @Param slot query string false "Gear slot (head, chest, shoes, main-hand, off-hand)"
// @Param tier query string false "Tier equivalent, e.g. T8"
// @Param name query string false "Case-insensitive item name substring"
// @Param in_stock query bool false "Only items with quantity above zero"
// @Success 200 {object} DataResponse{data=[]domain.InventoryItem}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/guilds/{guildID}/inventory [get]
func HandleListInventory(lister StockLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := domain.InventoryFilter{
			GuildID:     chi.URLParam(r, "guildID"),
			Tier:        q.Get("tier"),
			NameFilter:  q.Get("name"),
			InStockOnly: q.Get("in_stock") == "true",
		}
		if raw := q.Get("slot"); raw != "" {
			slot, err := domain.ParseSlot(raw)
			if err != nil {
				status, msg := mapServiceErrorToUserMessage(err)
				respondError(w, status, msg)
				return
			}
			filter.Slot = slot
		}

		items, err := lister.List(r.Context(), filter)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListStockFailed, "guild_id", filter.GuildID, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}
