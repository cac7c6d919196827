package world

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

// LocationID is stable across builds of the same definitions.
type LocationID int

// Location is a single item slot.
type Location struct {
	ID          LocationID
	Name        string
	Region      *Region
	Room        *Room
	VanillaItem items.ItemType

	// Item is the placed item, Nothing while unknown.
	Item          items.ItemType
	MarkedItem    items.ItemType
	Cleared       bool
	Accessibility Accessibility

	access       Requirement
	relevance    Requirement
	trackerLogic Requirement
}

// IsAvailable reports whether the location can be reached with p.
func (l *Location) IsAvailable(p progression.Progression) bool {
	return l.Region.CanEnter(p, true) && l.roomOK(p) && (l.access == nil || l.access(p))
}

// IsRelevant reports whether the location is worth showing with p: its
// region can be entered if reward gates are ignored and its relevance
// requirement holds. Without a relevance requirement the access
// requirement is used.
func (l *Location) IsRelevant(p progression.Progression) bool {
	if !l.Region.CanEnter(p, false) || !l.roomOK(p) {
		return false
	}
	if l.relevance != nil {
		return l.relevance(p)
	}
	return l.access == nil || l.access(p)
}

// SatisfiesTrackerLogic applies the extra gate used only for tracking.
func (l *Location) SatisfiesTrackerLogic(p progression.Progression) bool {
	return l.trackerLogic == nil || l.trackerLogic(p)
}

// ItemIs reports whether the placed item is t.
func (l *Location) ItemIs(t items.ItemType) bool {
	return l.Item == t
}

func (l *Location) roomOK(p progression.Progression) bool {
	return l.Room == nil || l.Room.CanEnter(p)
}

// LocationOption customises a location while it is defined.
type LocationOption func(*Location)

// WithRelevance sets a weaker requirement used for the relevant tiers.
func WithRelevance(req Requirement) LocationOption {
	return func(l *Location) { l.relevance = req }
}

// WithTrackerLogic adds a gate applied only when classifying for tracking.
func WithTrackerLogic(req Requirement) LocationOption {
	return func(l *Location) { l.trackerLogic = req }
}
