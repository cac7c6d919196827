package tracker

import (
	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// EventKind names what happened in a session.
type EventKind string

const (
	EventTrack     EventKind = "track"
	EventUntrack   EventKind = "untrack"
	EventBoss      EventKind = "boss"
	EventReward    EventKind = "reward"
	EventClear     EventKind = "clear"
	EventUnclear   EventKind = "unclear"
	EventMark      EventKind = "mark"
	EventItem      EventKind = "item"
	EventMedallion EventKind = "medallion"
	EventRefresh   EventKind = "refresh"
)

// Event is delivered to subscribers after a mutation or refresh. Changes
// lists only nodes whose accessibility actually changed.
type Event struct {
	SessionID uuid.UUID      `json:"session_id"`
	Kind      EventKind      `json:"kind"`
	Subject   string         `json:"subject,omitempty"`
	Changes   []world.Change `json:"changes,omitempty"`
}

// Listener receives session events. It is called without the tracker lock
// held and may call back into the tracker.
type Listener func(Event)
