// Package world is the requirement graph: regions, rooms and locations with
// their entry and access requirements, plus the evaluator that classifies
// each node's accessibility.
//
// A World is not safe for concurrent mutation. Predicates are pure and may
// be evaluated from several goroutines as long as nothing mutates node
// state meanwhile; the tracker serialises both.
package world

import (
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/logic"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
)

// World is a built requirement graph.
type World struct {
	cfg   *settings.Config
	logic *logic.Logic

	regions         []*Region
	locations       []*Location
	locationsByID   map[LocationID]*Location
	locationsByName map[string]*Location
	regionsByName   map[string]*Region
	bosses          map[items.BossType]*Region
}

// Config returns the live configuration shared with every predicate.
func (w *World) Config() *settings.Config { return w.cfg }

// Logic returns the predicate library bound to Config.
func (w *World) Logic() *logic.Logic { return w.logic }

// Regions returns every region in definition order.
func (w *World) Regions() []*Region { return w.regions }

// Locations returns every location in definition order.
func (w *World) Locations() []*Location { return w.locations }

// Location finds a location by ID.
func (w *World) Location(id LocationID) (*Location, error) {
	if l, ok := w.locationsByID[id]; ok {
		return l, nil
	}
	return nil, notFound("location", int(id))
}

// LocationByName finds a location by name, ignoring case and punctuation.
func (w *World) LocationByName(name string) (*Location, error) {
	if l, ok := w.locationsByName[items.Normalize(name)]; ok {
		return l, nil
	}
	return nil, notFound("location", name)
}

// Region finds a region by ID.
func (w *World) Region(id RegionID) (*Region, error) {
	if id < 0 || int(id) >= len(w.regions) {
		return nil, notFound("region", int(id))
	}
	return w.regions[id], nil
}

// RegionByName finds a region by name, ignoring case and punctuation.
func (w *World) RegionByName(name string) (*Region, error) {
	if r, ok := w.regionsByName[items.Normalize(name)]; ok {
		return r, nil
	}
	return nil, notFound("region", name)
}

// Boss finds the region holding boss b.
func (w *World) Boss(b items.BossType) (*Region, error) {
	if r, ok := w.bosses[b]; ok {
		return r, nil
	}
	return nil, notFound("boss", b)
}

// IsAvailable reports whether location id is reachable with p.
func (w *World) IsAvailable(id LocationID, p progression.Progression) (bool, error) {
	l, err := w.Location(id)
	if err != nil {
		return false, err
	}
	return l.IsAvailable(p), nil
}

// IsRelevant reports whether location id is relevant with p.
func (w *World) IsRelevant(id LocationID, p progression.Progression) (bool, error) {
	l, err := w.Location(id)
	if err != nil {
		return false, err
	}
	return l.IsRelevant(p), nil
}

// CanEnter reports whether region id can be entered with p.
func (w *World) CanEnter(id RegionID, p progression.Progression, requireRewards bool) (bool, error) {
	r, err := w.Region(id)
	if err != nil {
		return false, err
	}
	return r.CanEnter(p, requireRewards), nil
}

// CanBeatBoss reports whether boss b can be defeated with p.
func (w *World) CanBeatBoss(b items.BossType, p progression.Progression) (bool, error) {
	r, err := w.Boss(b)
	if err != nil {
		return false, err
	}
	return r.CanBeatBoss(p), nil
}

// CanRetrieveReward reports whether region id's reward can be collected.
func (w *World) CanRetrieveReward(id RegionID, p progression.Progression) (bool, error) {
	r, err := w.Region(id)
	if err != nil {
		return false, err
	}
	if r.Reward == nil {
		return false, notFound("reward", r.Name)
	}
	return r.CanRetrieveReward(p), nil
}

// Effective combines tracked items with the rewards and bosses recorded on
// the graph. Keys of a game whose keys are not shuffled are assumed.
func (w *World) Effective(tracked progression.Progression) progression.Progression {
	p := tracked
	for _, r := range w.regions {
		if r.Reward != nil && r.Reward.Obtained {
			p = p.AddReward(r.Reward.Type)
		}
		if r.Boss != nil && r.Boss.Defeated {
			p = p.WithBoss(r.Boss.Type, true)
		}
	}
	return w.assumeUnshuffledKeys(p)
}

// EmptyBaseline is a progression with nothing collected, holding only the
// keys of games whose keys are not shuffled.
func (w *World) EmptyBaseline() progression.Progression {
	return w.assumeUnshuffledKeys(progression.New())
}

func (w *World) assumeUnshuffledKeys(p progression.Progression) progression.Progression {
	if !w.cfg.ZeldaKeysanity() {
		p = p.WithAssumedKeys(items.Dungeons(items.Zelda)...)
	}
	if !w.cfg.MetroidKeysanity() {
		p = p.WithAssumedKeys(items.Dungeons(items.Metroid)...)
	}
	return p
}

// KeyScope lists the dungeons whose keys are assumed when classifying nodes
// of r as available with keys.
func (w *World) KeyScope(r *Region) []items.Dungeon {
	switch {
	case w.cfg.AssumeAllKeys:
		return items.AllDungeons()
	case r.Game == items.Metroid:
		return items.Dungeons(items.Metroid)
	case r.Dungeon != items.NoDungeon:
		return []items.Dungeon{r.Dungeon}
	default:
		return nil
	}
}

// WithKeys returns actual with the keys of r's scope assumed.
func (w *World) WithKeys(actual progression.Progression, r *Region) progression.Progression {
	return actual.WithAssumedKeys(w.KeyScope(r)...)
}

// SetLocationCleared marks a location cleared or not and keeps the
// region's treasure count in step.
func (w *World) SetLocationCleared(id LocationID, cleared bool) (*Location, error) {
	l, err := w.Location(id)
	if err != nil {
		return nil, err
	}
	if l.Cleared == cleared {
		return l, nil
	}
	l.Cleared = cleared
	if t := l.Region.Treasure; t != nil && !l.Item.IsKey() {
		if cleared {
			t.Take()
		} else {
			t.Return()
		}
	}
	return l, nil
}

// SetLocationItem records the item placed at a location.
func (w *World) SetLocationItem(id LocationID, item items.ItemType) (*Location, error) {
	l, err := w.Location(id)
	if err != nil {
		return nil, err
	}
	if !item.Valid() {
		return nil, fmt.Errorf("location %q: invalid item %d", l.Name, int(item))
	}
	l.Item = item
	return l, nil
}

// SetMarkedItem records what the player expects to find at a location.
func (w *World) SetMarkedItem(id LocationID, item items.ItemType) (*Location, error) {
	l, err := w.Location(id)
	if err != nil {
		return nil, err
	}
	if !item.Valid() {
		return nil, fmt.Errorf("location %q: invalid item %d", l.Name, int(item))
	}
	l.MarkedItem = item
	return l, nil
}

// SetBossDefeated marks boss b defeated or not.
func (w *World) SetBossDefeated(b items.BossType, defeated bool) (*Region, error) {
	r, err := w.Boss(b)
	if err != nil {
		return nil, err
	}
	r.Boss.Defeated = defeated
	return r, nil
}

// SetReward records a region's reward and whether it was obtained.
// items.NoReward keeps the current reward type.
func (w *World) SetReward(id RegionID, reward items.RewardType, obtained bool) (*Region, error) {
	r, err := w.Region(id)
	if err != nil {
		return nil, err
	}
	if r.Reward == nil {
		return nil, notFound("reward", r.Name)
	}
	if !reward.Valid() {
		return nil, fmt.Errorf("region %q: invalid reward %d", r.Name, int(reward))
	}
	if reward != items.NoReward && reward != r.Reward.Type {
		if r.Reward.Fixed {
			return nil, fmt.Errorf("region %q always rewards %v", r.Name, r.Reward.Type)
		}
		r.Reward.Type = reward
	}
	r.Reward.Obtained = obtained
	return r, nil
}

// SetMedallion records the medallion a region requires. items.Nothing
// marks it unknown.
func (w *World) SetMedallion(id RegionID, medallion items.ItemType) (*Region, error) {
	r, err := w.Region(id)
	if err != nil {
		return nil, err
	}
	if r.Prerequisite == nil {
		return nil, notFound("prerequisite", r.Name)
	}
	if medallion != items.Nothing && !IsMedallion(medallion) {
		return nil, fmt.Errorf("region %q: %v is not a medallion", r.Name, medallion)
	}
	r.Prerequisite.Medallion = medallion
	return r, nil
}
