package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
)

type PresetsHandler struct {
	sessions *sessions.Manager
	logger   *slog.Logger
}

func NewPresetsHandler(mgr *sessions.Manager, logger *slog.Logger) *PresetsHandler {
	return &PresetsHandler{sessions: mgr, logger: logger}
}

// ServeHTTP handles
// GET /v1/presets         - List preset names
// GET /v1/presets/{name}  - Read one preset's settings
func (h *PresetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	parts := splitPath(r.URL.Path, "/v1/presets")
	switch len(parts) {
	case 0:
		names, err := h.sessions.Presets(r.Context())
		if err != nil {
			writeFailure(w, r, h.logger, err)
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"presets": names})
	case 1:
		cfg, err := h.sessions.Preset(r.Context(), parts[0])
		if err != nil {
			if errors.Is(err, storage.ErrPresetNotFound) {
				writeError(w, h.logger, http.StatusNotFound, err.Error())
				return
			}
			writeFailure(w, r, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, cfg)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}
