package world

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
)

// State is the persisted progress attached to a world: per-location,
// per-region and per-boss records. Regions are keyed by name so that
// saved state survives reordering of the definitions.
type State struct {
	Locations map[LocationID]LocationState `json:"locations,omitempty"`
	Regions   map[string]RegionState      `json:"regions,omitempty"`
	Bosses    map[items.BossType]bool      `json:"bosses,omitempty"`
}

// LocationState is the saved progress of one location.
type LocationState struct {
	Cleared    bool           `json:"cleared,omitempty"`
	Item       items.ItemType `json:"item,omitempty"`
	MarkedItem items.ItemType `json:"marked_item,omitempty"`
}

// RegionState is the saved progress of one region's facets.
type RegionState struct {
	Reward            items.RewardType `json:"reward,omitempty"`
	RewardObtained    bool             `json:"reward_obtained,omitempty"`
	Medallion         items.ItemType   `json:"medallion,omitempty"`
	TreasureRemaining *int             `json:"treasure_remaining,omitempty"`
}

// Snapshot captures the mutable state of every node. Locations and regions
// without progress are left out.
func (w *World) Snapshot() State {
	s := State{
		Locations: make(map[LocationID]LocationState),
		Regions:   make(map[string]RegionState),
		Bosses:    make(map[items.BossType]bool),
	}
	for _, l := range w.locations {
		ls := LocationState{Cleared: l.Cleared, Item: l.Item, MarkedItem: l.MarkedItem}
		if ls != (LocationState{}) {
			s.Locations[l.ID] = ls
		}
	}
	for _, r := range w.regions {
		var rs RegionState
		changed := false
		if r.Reward != nil {
			rs.Reward = r.Reward.Type
			rs.RewardObtained = r.Reward.Obtained
			changed = true
		}
		if r.Prerequisite != nil {
			rs.Medallion = r.Prerequisite.Medallion
			changed = true
		}
		if r.Treasure != nil {
			remaining := r.Treasure.Remaining
			rs.TreasureRemaining = &remaining
			changed = true
		}
		if changed {
			s.Regions[r.Name] = rs
		}
		if r.Boss != nil && r.Boss.Defeated {
			s.Bosses[r.Boss.Type] = true
		}
	}
	return s
}

// ApplyState seeds node state from a snapshot. Unknown locations, regions
// and bosses are reported together; everything known is still applied.
func (w *World) ApplyState(s State) error {
	var errs []error
	for id, ls := range s.Locations {
		l, err := w.Location(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l.Cleared = ls.Cleared
		l.Item = ls.Item
		l.MarkedItem = ls.MarkedItem
	}
	for name, rs := range s.Regions {
		r, err := w.RegionByName(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if r.Reward != nil {
			if rs.Reward != items.NoReward && !(r.Reward.Fixed && rs.Reward != r.Reward.Type) {
				r.Reward.Type = rs.Reward
			}
			r.Reward.Obtained = rs.RewardObtained
		}
		if r.Prerequisite != nil {
			if rs.Medallion == items.Nothing || IsMedallion(rs.Medallion) {
				r.Prerequisite.Medallion = rs.Medallion
			} else {
				errs = append(errs, fmt.Errorf("region %q: %v is not a medallion", name, rs.Medallion))
			}
		}
		if r.Treasure != nil && rs.TreasureRemaining != nil {
			r.Treasure.Remaining = min(max(*rs.TreasureRemaining, 0), r.Treasure.Total)
		}
	}
	for b, defeated := range s.Bosses {
		r, err := w.Boss(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.Boss.Defeated = defeated
	}
	return errors.Join(errs...)
}
