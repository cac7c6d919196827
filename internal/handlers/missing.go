package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/search"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

const searchTimeout = 10 * time.Second

// MissingResponse describes what a node still needs.
type MissingResponse struct {
	Node          string     `json:"node"`
	Options       [][]string `json:"options"`
	Hint          string     `json:"hint,omitempty"`
	Satisfied     bool       `json:"satisfied"`
	Unsatisfiable bool       `json:"unsatisfiable"`
	Exhausted     bool       `json:"exhausted"`
	Probes        int        `json:"probes"`
}

// resolveNode picks the node named by exactly one of location, boss or
// reward. reward names the region holding the reward.
func resolveNode(tr *tracker.Tracker, location, boss, reward string) (world.NodeRef, error) {
	set := 0
	for _, s := range []string{location, boss, reward} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return world.NodeRef{}, badRequest{errors.New("exactly one of location, boss or reward is required")}
	}

	switch {
	case location != "":
		return tr.LocationNode(location)
	case boss != "":
		b, err := items.ParseBoss(boss)
		if err != nil {
			return world.NodeRef{}, badRequest{err}
		}
		return tr.BossNode(b)
	default:
		return tr.RewardNode(reward)
	}
}

func (h *SessionsHandler) handleMissing(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	q := r.URL.Query()
	tr, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}
	node, err := resolveNode(tr, q.Get("location"), q.Get("boss"), q.Get("reward"))
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
	defer cancel()

	var res search.Result
	switch q.Get("baseline") {
	case "", "current":
		res, err = tr.MissingItems(ctx, node)
	case "empty":
		res, err = tr.MissingItemsFromEmpty(ctx, node)
	default:
		writeError(w, h.logger, http.StatusBadRequest, "baseline must be current or empty")
		return
	}
	if err != nil {
		writeFailure(w, r, h.logger, err)
		return
	}

	resp := MissingResponse{
		Node:          node.String(),
		Options:       res.Names(),
		Hint:          res.String(),
		Satisfied:     res.Satisfied,
		Unsatisfiable: res.Unsatisfiable,
		Exhausted:     res.Exhausted,
		Probes:        res.Probes,
	}
	for _, st := range tr.Status(tracker.Filter{Kind: &node.Kind}) {
		if st.Node == node {
			resp.Node = st.Name
			break
		}
	}
	h.logger.Debug("Missing items searched",
		"session_id", id.String(),
		"node", resp.Node,
		"probes", res.Probes,
		"exhausted", res.Exhausted)
	writeJSON(w, h.logger, http.StatusOK, resp)
}
