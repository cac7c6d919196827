package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/worker"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// ActionRequest is one tracking action, named the way a person would type
// it: {"type": "track", "value": "Hookshot"} or
// {"type": "clear", "target": "Link's House"}.
type ActionRequest struct {
	Type   queuePkg.RequestType `json:"type"`
	Value  string               `json:"value,omitempty"`
	Target string               `json:"target,omitempty"`
}

// ActionResponse lists the nodes whose accessibility changed.
type ActionResponse struct {
	Changes []world.Change  `json:"changes"`
	Session SessionResponse `json:"session"`
}

// AutoTrackResponse acknowledges a queued action.
type AutoTrackResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// AutoTrackHistoryResponse lists recently applied auto-track requests,
// oldest first.
type AutoTrackHistoryResponse struct {
	Requests []*queuePkg.Request `json:"requests"`
}

const defaultHistoryLimit = 20

func (h *SessionsHandler) decodeAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*queuePkg.Request, bool) {
	var body ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("Invalid action request", "session_id", id.String(), "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return nil, false
	}
	req := queuePkg.NewRequest(id, body.Type, body.Value, body.Target)
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return req, true
}

func (h *SessionsHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	req, ok := h.decodeAction(w, r, id)
	if !ok {
		return
	}

	var changes []world.Change
	tr, err := h.sessions.Update(r.Context(), id, func(tr *tracker.Tracker) error {
		c, err := worker.Apply(tr, req)
		if err != nil {
			if errors.Is(err, world.ErrNotFound) {
				return err
			}
			return badRequest{err}
		}
		changes = c
		return nil
	})
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	if changes == nil {
		changes = []world.Change{}
	}
	h.logger.Debug("Action applied",
		"session_id", id.String(),
		"type", req.Type,
		"changed", len(changes))
	writeJSON(w, h.logger, http.StatusOK, ActionResponse{
		Changes: changes,
		Session: newSessionResponse(tr),
	})
}

func (h *SessionsHandler) handleAutoTrack(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if h.queue == nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, "Auto-tracking is not enabled")
		return
	}
	req, ok := h.decodeAction(w, r, id)
	if !ok {
		return
	}
	if _, err := h.sessions.Get(r.Context(), id); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	if err := h.queue.EnqueueRequest(r.Context(), req); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	if h.publisher != nil {
		if err := h.publisher.PublishAutoTrackQueued(r.Context(), id, req.RequestID, string(req.Type), req.Value); err != nil {
			h.logger.Error("Failed to publish queued event", "session_id", id.String(), "error", err)
		}
	}

	writeJSON(w, h.logger, http.StatusAccepted, AutoTrackResponse{
		RequestID: req.RequestID,
		Status:    "queued",
	})
}

func (h *SessionsHandler) handleAutoTrackHistory(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if h.queue == nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, "Auto-tracking is not enabled")
		return
	}
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	if _, err := h.sessions.Get(r.Context(), id); err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	reqs, err := h.queue.History(r.Context(), id, limit)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	if reqs == nil {
		reqs = []*queuePkg.Request{}
	}
	writeJSON(w, h.logger, http.StatusOK, AutoTrackHistoryResponse{Requests: reqs})
}
