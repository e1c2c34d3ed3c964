// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/noteplane/noteplane/internal/service"
)

// validate is the shared request validator.
var validate = validator.New()

// Handler wraps shared endpoints that need no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root info endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Noteplane API",
		"version": "1.0.0",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found", nil)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
}

// errorEnvelope is the uniform error body: {"error": string, "details"?: object}.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the error envelope with the given status code.
func writeError(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: message, Details: details})
}

// writeServiceError translates a service error into an HTTP response.
// All authorization decisions happen in the service layer; this only maps
// the error kind to a status code and renders the message.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, requestID string, err error) {
	var quotaErr *service.QuotaExceededError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, service.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "note not found", nil)
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "not permitted", nil)
	case errors.As(err, &quotaErr):
		writeError(w, http.StatusForbidden, quotaErr.Error(), map[string]int{
			"current_count": quotaErr.CurrentCount,
			"limit":         quotaErr.Limit,
		})
	default:
		// Full detail stays in the logs; the caller sees an opaque failure.
		logger.Error("internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		writeError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
