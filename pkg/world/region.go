package world

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

// Requirement is a pure predicate over a progression.
type Requirement func(p progression.Progression) bool

// EntryRequirement decides whether a region can be entered. With
// requireRewards false, reward gates (pendants, crystals, Agahnim, Golden
// Four) are treated as met.
type EntryRequirement func(p progression.Progression, requireRewards bool) bool

// RegionID indexes a region in its world.
type RegionID int

// Region is a named area with an entry requirement. Optional facets add a
// boss, a reward, a treasure count or a medallion gate.
type Region struct {
	ID      RegionID
	Name    string
	Area    string
	Game    items.Game
	Dungeon items.Dungeon
	// Weight hints at placement difficulty. It does not affect logic.
	Weight         int
	MemoryRegionID int

	Rooms     []*Room
	Locations []*Location

	Boss         *BossFacet
	Reward       *RewardFacet
	Treasure     *TreasureFacet
	Prerequisite *PrerequisiteFacet

	canEnter EntryRequirement
	deps     []*RegionRef
}

// CanEnter reports whether the region can be entered with p.
func (r *Region) CanEnter(p progression.Progression, requireRewards bool) bool {
	if r.Prerequisite != nil && !r.Prerequisite.Satisfied(p) {
		return false
	}
	return r.canEnter == nil || r.canEnter(p, requireRewards)
}

// CanBeatBoss reports whether the region's boss can be defeated with p. A
// region without a boss always answers false.
func (r *Region) CanBeatBoss(p progression.Progression) bool {
	if r.Boss == nil {
		return false
	}
	return r.CanEnter(p, true) &&
		(r.Boss.canExit == nil || r.Boss.canExit(p)) &&
		(r.Boss.canBeat == nil || r.Boss.canBeat(p))
}

// CanRetrieveReward reports whether the region's reward can be collected
// with p. Without an explicit requirement this is beating the boss.
func (r *Region) CanRetrieveReward(p progression.Progression) bool {
	if r.Reward == nil {
		return false
	}
	if r.Reward.canRetrieve != nil {
		return r.CanEnter(p, true) && r.Reward.canRetrieve(p)
	}
	return r.CanBeatBoss(p)
}

// Room groups locations that share an extra requirement.
type Room struct {
	Name      string
	Region    *Region
	Locations []*Location

	canEnter Requirement
}

// CanEnter reports whether the room can be entered, assuming its region can.
func (r *Room) CanEnter(p progression.Progression) bool {
	return r.canEnter == nil || r.canEnter(p)
}

// BossFacet holds a region's boss.
type BossFacet struct {
	Type          items.BossType
	Defeated      bool
	Accessibility Accessibility

	canBeat Requirement
	canExit Requirement
}

// RewardFacet holds what a dungeon hands out once finished. Type may be
// changed while playing as the reward is discovered.
type RewardFacet struct {
	Type          items.RewardType
	Obtained      bool
	Accessibility Accessibility

	// Fixed rewards cannot be changed by the tracker.
	Fixed bool

	canRetrieve Requirement
}

// TreasureFacet counts a dungeon's remaining non-dungeon items.
type TreasureFacet struct {
	Total     int
	Remaining int
}

// Take decrements Remaining, stopping at zero.
func (t *TreasureFacet) Take() {
	if t.Remaining > 0 {
		t.Remaining--
	}
}

// Return increments Remaining, stopping at Total.
func (t *TreasureFacet) Return() {
	if t.Remaining < t.Total {
		t.Remaining++
	}
}

// PrerequisiteFacet gates a region on a medallion. An unknown medallion
// (items.Nothing) requires all three.
type PrerequisiteFacet struct {
	Medallion items.ItemType
	Default   items.ItemType
}

// Medallions are the items a prerequisite can name.
var Medallions = []items.ItemType{items.Bombos, items.Ether, items.Quake}

// IsMedallion reports whether t can be used as a prerequisite.
func IsMedallion(t items.ItemType) bool {
	for _, m := range Medallions {
		if m == t {
			return true
		}
	}
	return false
}

// Satisfied reports whether p holds the required medallion.
func (f *PrerequisiteFacet) Satisfied(p progression.Progression) bool {
	if f.Medallion == items.Nothing {
		for _, m := range Medallions {
			if !p.Contains(m) {
				return false
			}
		}
		return true
	}
	return p.Contains(f.Medallion)
}
