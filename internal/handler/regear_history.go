package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PhoenixBot_Go/internal/eventlog"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// HistoryReader returns the recorded lifecycle of a reservation
type HistoryReader interface {
	History(ctx context.Context, guildID, regearID string) ([]eventlog.Entry, error)
}

// HandleRegearHistory returns the lifecycle events of one reservation, oldest first.
// An unknown reservation yields an empty list.
// @Summary Get regear history
// @Description Get the recorded lifecycle events of a regear reservation
// @Tags regears
// @Produce json
// @Security ApiKeyAuth
// @Param guildID path string true "Guild ID"
// @Param regearID path string true "Regear ID"
// @Success 200 {object} DataResponse{data=[]eventlog.Entry}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/guilds/{guildID}/regears/{regearID}/events [get]
func HandleRegearHistory(reader HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := chi.URLParam(r, "guildID")
		regearID := chi.URLParam(r, "regearID")
		if guildID == "" || regearID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, "guildID/regearID"))
			return
		}

		entries, err := reader.History(r.Context(), guildID, regearID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetHistoryFailed, "regear_id", regearID, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		if entries == nil {
			entries = []eventlog.Entry{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
