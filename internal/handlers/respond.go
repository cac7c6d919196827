package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// badRequest marks an error caused by the client's input.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// writeFailure maps err onto a status code. Lookup misses and bad input
// are reported back; anything else is logged and hidden.
func writeFailure(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var bad badRequest
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		writeError(w, logger, http.StatusNotFound, "Session not found")
	case errors.Is(err, world.ErrNotFound):
		writeError(w, logger, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrPresetNotFound):
		writeError(w, logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, sessions.ErrSessionBusy):
		writeError(w, logger, http.StatusConflict, "Session is busy, try again")
	case errors.As(err, &bad):
		writeError(w, logger, http.StatusBadRequest, bad.Error())
	default:
		logger.Error("Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		writeError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}

// splitPath returns the path segments after prefix.
func splitPath(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func parseSessionID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("Invalid session ID format")
	}
	return id, nil
}
