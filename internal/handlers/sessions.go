package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

// AutoTrackQueue accepts auto-track requests for the worker and keeps the
// record of applied ones.
type AutoTrackQueue interface {
	EnqueueRequest(ctx context.Context, req *queuePkg.Request) error
	History(ctx context.Context, sessionID uuid.UUID, limit int) ([]*queuePkg.Request, error)
	ClearHistory(ctx context.Context, sessionID uuid.UUID) error
}

// QueuedPublisher announces accepted auto-track requests.
type QueuedPublisher interface {
	PublishAutoTrackQueued(ctx context.Context, sessionID uuid.UUID, requestID, kind, value string) error
}

type SessionsHandler struct {
	sessions  *sessions.Manager
	queue     AutoTrackQueue
	publisher QueuedPublisher
	logger    *slog.Logger
}

// NewSessionsHandler serves the session API. queue and publisher may be nil,
// in which case auto-track requests are refused.
func NewSessionsHandler(mgr *sessions.Manager, queue AutoTrackQueue, publisher QueuedPublisher, logger *slog.Logger) *SessionsHandler {
	return &SessionsHandler{
		sessions:  mgr,
		queue:     queue,
		publisher: publisher,
		logger:    logger,
	}
}

// ServeHTTP routes session requests.
// Routes:
// POST   /v1/sessions                         - Create a session
// GET    /v1/sessions                         - List session IDs
// GET    /v1/sessions/{id}                    - Read a session
// DELETE /v1/sessions/{id}                    - Delete a session
// POST   /v1/sessions/{id}/actions            - Apply a tracking action
// POST   /v1/sessions/{id}/autotrack          - Queue a tracking action
// GET    /v1/sessions/{id}/locations          - List node accessibility
// GET    /v1/sessions/{id}/locations/{name}   - Read one location
// GET    /v1/sessions/{id}/missing            - Find missing items for a node
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/v1/sessions")

	if len(parts) == 0 {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			h.methodNotAllowed(w, r, "POST, GET")
		}
		return
	}

	id, err := parseSessionID(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0])
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			h.methodNotAllowed(w, r, "GET, DELETE")
		}
		return
	}

	switch parts[1] {
	case "actions":
		if r.Method != http.MethodPost || len(parts) != 2 {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleAction(w, r, id)
	case "autotrack":
		switch {
		case len(parts) != 2:
			writeError(w, h.logger, http.StatusNotFound, "Not found")
		case r.Method == http.MethodPost:
			h.handleAutoTrack(w, r, id)
		case r.Method == http.MethodGet:
			h.handleAutoTrackHistory(w, r, id)
		default:
			h.methodNotAllowed(w, r, "GET, POST")
		}
	case "locations":
		if r.Method != http.MethodGet || len(parts) > 3 {
			h.methodNotAllowed(w, r, "GET")
			return
		}
		if len(parts) == 3 {
			h.handleLocation(w, r, id, parts[2])
			return
		}
		h.handleLocations(w, r, id)
	case "missing":
		if r.Method != http.MethodGet || len(parts) != 2 {
			h.methodNotAllowed(w, r, "GET")
			return
		}
		h.handleMissing(w, r, id)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *SessionsHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	h.logger.Warn("Method not allowed for sessions endpoint",
		"method", r.Method,
		"path", r.URL.Path)
	w.Header().Set("Allow", allowed)
	writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: "+allowed)
}

// CreateSessionRequest picks the settings for a new session: a named
// preset, inline settings, or neither for the server defaults. Inline
// settings are layered over settings.Default.
type CreateSessionRequest struct {
	Preset   string          `json:"preset,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// SessionResponse summarizes a session.
type SessionResponse struct {
	ID          uuid.UUID               `json:"id"`
	Settings    *settings.Config        `json:"settings"`
	Progression progression.Progression `json:"progression"`
	Counts      map[string]int          `json:"counts"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func newSessionResponse(tr *tracker.Tracker) SessionResponse {
	snap := tr.Snapshot()
	counts := make(map[string]int)
	for _, s := range tr.Status(tracker.Filter{}) {
		counts[s.Accessibility.String()]++
	}
	return SessionResponse{
		ID:          snap.ID,
		Settings:    snap.Settings,
		Progression: snap.Progression,
		Counts:      counts,
		UpdatedAt:   snap.UpdatedAt,
	}
}

func (h *SessionsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn("Invalid create session request", "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}
	if req.Preset != "" && len(req.Settings) > 0 {
		writeError(w, h.logger, http.StatusBadRequest, "Specify either preset or settings, not both")
		return
	}

	var cfg *settings.Config
	if len(req.Settings) > 0 {
		cfg = settings.Default()
		if err := json.Unmarshal(req.Settings, cfg); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid settings: "+err.Error())
			return
		}
	}
	if req.Preset != "" {
		p, err := h.sessions.Preset(r.Context(), req.Preset)
		if err != nil {
			writeFailure(w, r, h.logger, err)
			return
		}
		cfg = p
	}
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
	}

	tr, err := h.sessions.Create(r.Context(), cfg)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, newSessionResponse(tr))
}

func (h *SessionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := h.sessions.List(r.Context())
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"sessions": ids})
}

func (h *SessionsHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	tr, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newSessionResponse(tr))
}

func (h *SessionsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	if h.queue != nil {
		if err := h.queue.ClearHistory(r.Context(), id); err != nil {
			h.logger.Error("Failed to clear auto-track history", "session_id", id.String(), "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
