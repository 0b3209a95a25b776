package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
	encodeFailedBody  = `{"error":"` + ErrMsgGenericServerError + `"}` + "\n"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload.
// The payload is encoded before the status is written, so an unencodable
// payload becomes a 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf, err := encodeJSON(payload)
	if err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailedBody))
		return
	}
	defer releaseBuffer(buf)

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequestError   = "Invalid request. Please check your inputs."
	ErrMsgRegearNotFoundError   = "Regear not found"
	ErrMsgGuildNotFoundError    = "Guild not found"
	ErrMsgPermissionDeniedError = "Permission denied"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages that do not leak internals
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound, ErrMsgRegearNotFoundError
	case errors.Is(err, domain.ErrGuildNotFound):
		return http.StatusNotFound, ErrMsgGuildNotFoundError
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, ErrMsgPermissionDeniedError
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
