package handlers

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// LocationsResponse lists node states in definition order.
type LocationsResponse struct {
	Nodes []tracker.NodeStatus `json:"nodes"`
	Count int                  `json:"count"`
}

// parseFilter reads kind, region and accessibility query parameters.
func parseFilter(q url.Values) (tracker.Filter, error) {
	var f tracker.Filter
	if v := q.Get("kind"); v != "" {
		var k world.NodeKind
		if err := k.UnmarshalText([]byte(v)); err != nil {
			return f, err
		}
		f.Kind = &k
	}
	if v := q.Get("accessibility"); v != "" {
		var a world.Accessibility
		if err := a.UnmarshalText([]byte(v)); err != nil {
			return f, err
		}
		f.Accessibility = &a
	}
	f.Region = q.Get("region")
	return f, nil
}

func (h *SessionsHandler) handleLocations(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	tr, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	nodes := tr.Status(filter)
	if nodes == nil {
		nodes = []tracker.NodeStatus{}
	}
	writeJSON(w, h.logger, http.StatusOK, LocationsResponse{Nodes: nodes, Count: len(nodes)})
}

func (h *SessionsHandler) handleLocation(w http.ResponseWriter, r *http.Request, id uuid.UUID, rawName string) {
	name, err := url.PathUnescape(rawName)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid location name")
		return
	}
	tr, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	status, err := tr.Location(name)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, status)
}
