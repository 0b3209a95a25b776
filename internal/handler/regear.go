package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/logger"
)

// RegearReader looks up reservations
type RegearReader interface {
	Get(ctx context.Context, regearID string) (*domain.Reservation, error)
}

// HandleGetRegear returns one reservation of a guild as JSON.
// A reservation belonging to another guild is reported as not found.
// @Summary Get regear
// @Description Get one regear reservation of a guild with its items, status and message surfaces
// @Tags regears
// @Produce json
// @Security ApiKeyAuth
// @Param guildID path string true "Guild ID"
// @Param regearID path string true "Regear ID"
// @Success 200 {object} DataResponse{data=domain.Reservation}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/guilds/{guildID}/regears/{regearID} [get]
func HandleGetRegear(reader RegearReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := chi.URLParam(r, "guildID")
		regearID := chi.URLParam(r, "regearID")
		if guildID == "" || regearID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, "guildID/regearID"))
			return
		}

		res, err := reader.Get(r.Context(), regearID)
		if err == nil && res.GuildID != guildID {
			err = fmt.Errorf("%w: %s", domain.ErrReservationNotFound, regearID)
		}
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			if status >= http.StatusInternalServerError {
				logger.FromContext(r.Context()).Error(ErrMsgGetRegearFailed, "regear_id", regearID, "error", err)
			}
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: res})
	}
}
