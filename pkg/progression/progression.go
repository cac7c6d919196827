// Package progression holds the Progression value: everything a player has
// collected, obtained or defeated.
package progression

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
)

// Progression is a comparable value. Every mutating method returns a new
// Progression and leaves the receiver untouched, so speculative variants can
// be built freely and used as map keys.
type Progression struct {
	counts  [items.NumItemTypes]uint8
	rewards [items.NumRewardTypes]uint8
	bosses  uint32
}

// New returns a progression holding one of each given item.
func New(types ...items.ItemType) Progression {
	return Progression{}.AddRange(types...)
}

// Count returns how many of t are held. Unknown types count as zero.
func (p Progression) Count(t items.ItemType) int {
	if !t.Valid() {
		return 0
	}
	return int(p.counts[t])
}

// Contains reports whether at least one t is held.
func (p Progression) Contains(t items.ItemType) bool {
	return p.Count(t) > 0
}

// Has reports whether at least n of t are held.
func (p Progression) Has(t items.ItemType, n int) bool {
	return p.Count(t) >= n
}

// Add returns p with one more t, capped at the item's maximum.
func (p Progression) Add(t items.ItemType) Progression {
	if !t.Valid() || t == items.Nothing {
		return p
	}
	if int(p.counts[t]) < t.Info().Max {
		p.counts[t]++
	}
	return p
}

// AddRange returns p with one more of each given item.
func (p Progression) AddRange(types ...items.ItemType) Progression {
	for _, t := range types {
		p = p.Add(t)
	}
	return p
}

// Remove returns p with one fewer t.
func (p Progression) Remove(t items.ItemType) Progression {
	if t.Valid() && p.counts[t] > 0 {
		p.counts[t]--
	}
	return p
}

// WithCount returns p holding exactly n of t, clamped to [0, max].
func (p Progression) WithCount(t items.ItemType, n int) Progression {
	if !t.Valid() || t == items.Nothing {
		return p
	}
	p.counts[t] = uint8(clamp(n, t.Info().Max))
	return p
}

// CountReward returns how many regions holding r have been completed.
func (p Progression) CountReward(r items.RewardType) int {
	if !r.Valid() {
		return 0
	}
	return int(p.rewards[r])
}

// HasReward reports whether at least one r has been obtained.
func (p Progression) HasReward(r items.RewardType) bool {
	return p.CountReward(r) > 0
}

// AddReward returns p with one more r.
func (p Progression) AddReward(r items.RewardType) Progression {
	if !r.Valid() || r == items.NoReward {
		return p
	}
	if int(p.rewards[r]) < r.Max() {
		p.rewards[r]++
	}
	return p
}

// WithRewardCount returns p holding exactly n of r, clamped to [0, max].
func (p Progression) WithRewardCount(r items.RewardType, n int) Progression {
	if !r.Valid() || r == items.NoReward {
		return p
	}
	p.rewards[r] = uint8(clamp(n, r.Max()))
	return p
}

// Defeated reports whether b has been beaten.
func (p Progression) Defeated(b items.BossType) bool {
	if !b.Valid() || b == items.NoBoss {
		return false
	}
	return p.bosses&(1<<uint(b)) != 0
}

// WithBoss returns p with b marked as defeated or not.
func (p Progression) WithBoss(b items.BossType, defeated bool) Progression {
	if !b.Valid() || b == items.NoBoss {
		return p
	}
	if defeated {
		p.bosses |= 1 << uint(b)
	} else {
		p.bosses &^= 1 << uint(b)
	}
	return p
}

// CountDefeated returns how many of the given bosses have been beaten.
func (p Progression) CountDefeated(bosses ...items.BossType) int {
	n := 0
	for _, b := range bosses {
		if p.Defeated(b) {
			n++
		}
	}
	return n
}

// WithAssumedKeys returns p with every key of the given dungeons set to its
// maximum.
func (p Progression) WithAssumedKeys(dungeons ...items.Dungeon) Progression {
	for _, d := range dungeons {
		for _, key := range d.Keys() {
			p.counts[key] = uint8(key.Info().Max)
		}
	}
	return p
}

// WithoutRewardsAndBosses returns only the item counts of p.
func (p Progression) WithoutRewardsAndBosses() Progression {
	return Progression{counts: p.counts}
}

// Equal reports whether both progressions hold exactly the same things.
func (p Progression) Equal(other Progression) bool {
	return p == other
}

// SubsetOf reports whether every count in p is at most the matching count
// in other, and every defeated boss in p is also defeated in other.
func (p Progression) SubsetOf(other Progression) bool {
	for i := range p.counts {
		if p.counts[i] > other.counts[i] {
			return false
		}
	}
	for i := range p.rewards {
		if p.rewards[i] > other.rewards[i] {
			return false
		}
	}
	return p.bosses&^other.bosses == 0
}

// Items returns every held item type with its count, in declaration order.
func (p Progression) Items() []ItemCount {
	var out []ItemCount
	for t := items.Nothing + 1; t < items.NumItemTypes; t++ {
		if p.counts[t] > 0 {
			out = append(out, ItemCount{Item: t, Count: int(p.counts[t])})
		}
	}
	return out
}

// Diff returns the item units present in other but not in p, one entry per
// missing unit.
func (p Progression) Diff(other Progression) []items.ItemType {
	var out []items.ItemType
	for t := items.Nothing + 1; t < items.NumItemTypes; t++ {
		for n := p.counts[t]; n < other.counts[t]; n++ {
			out = append(out, t)
		}
	}
	return out
}

// ItemCount pairs an item with a held count.
type ItemCount struct {
	Item  items.ItemType `json:"item"`
	Count int            `json:"count"`
}

// Full returns a progression holding every item at its maximum, every
// reward and every defeated boss.
func Full() Progression {
	var p Progression
	for t := items.Nothing + 1; t < items.NumItemTypes; t++ {
		p.counts[t] = uint8(t.Info().Max)
	}
	for _, r := range items.Rewards() {
		p.rewards[r] = uint8(r.Max())
	}
	for _, b := range items.Bosses() {
		p = p.WithBoss(b, true)
	}
	return p
}

func clamp(n, hi int) int {
	if n < 0 {
		return 0
	}
	if n > hi {
		return hi
	}
	return n
}
