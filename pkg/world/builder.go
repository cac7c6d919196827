package world

import (
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/logic"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
)

// First location IDs per game.
const (
	MetroidLocationBase LocationID = 0
	ZeldaLocationBase   LocationID = 256
)

// Builder collects region definitions and assembles them into a World.
type Builder struct {
	cfg   *settings.Config
	logic *logic.Logic

	regions      []*Region
	regionRefs   []*RegionRef
	locationRefs []*LocationRef
	nextID       map[items.Game]LocationID
	tracer       *tracer
	errs         []error
}

// NewBuilder starts an empty world for cfg. A nil cfg uses
// settings.Default.
func NewBuilder(cfg *settings.Config) *Builder {
	if cfg == nil {
		cfg = settings.Default()
	}
	return &Builder{
		cfg:   cfg,
		logic: logic.New(cfg),
		nextID: map[items.Game]LocationID{
			items.Metroid: MetroidLocationBase,
			items.Zelda:   ZeldaLocationBase,
		},
		tracer: &tracer{},
	}
}

// Config returns the configuration predicates read.
func (b *Builder) Config() *settings.Config { return b.cfg }

// Logic returns the shared predicate library.
func (b *Builder) Logic() *logic.Logic { return b.logic }

// Region starts a new region.
func (b *Builder) Region(name, area string, game items.Game) *RegionBuilder {
	r := &Region{
		ID:   RegionID(len(b.regions)),
		Name: name,
		Area: area,
		Game: game,
	}
	b.regions = append(b.regions, r)
	return &RegionBuilder{b: b, r: r}
}

func (b *Builder) newLocation(r *Region, room *Room, name string, vanilla items.ItemType, access Requirement, opts []LocationOption) *Location {
	id := b.nextID[r.Game]
	b.nextID[r.Game]++
	l := &Location{
		ID:          id,
		Name:        name,
		Region:      r,
		Room:        room,
		VanillaItem: vanilla,
		access:      access,
	}
	for _, opt := range opts {
		opt(l)
	}
	r.Locations = append(r.Locations, l)
	if room != nil {
		room.Locations = append(room.Locations, l)
	}
	return l
}

// RegionBuilder defines one region.
type RegionBuilder struct {
	b *Builder
	r *Region
}

// Region returns the region being defined.
func (rb *RegionBuilder) Region() *Region { return rb.r }

// Dungeon sets the key scope of the region.
func (rb *RegionBuilder) Dungeon(d items.Dungeon) *RegionBuilder {
	rb.r.Dungeon = d
	return rb
}

// Weight sets the placement hint.
func (rb *RegionBuilder) Weight(w int) *RegionBuilder {
	rb.r.Weight = w
	return rb
}

// MemoryRegion sets the auto-tracker map identifier.
func (rb *RegionBuilder) MemoryRegion(id int) *RegionBuilder {
	rb.r.MemoryRegionID = id
	return rb
}

// Entry sets the entry requirement.
func (rb *RegionBuilder) Entry(req EntryRequirement) *RegionBuilder {
	rb.r.canEnter = req
	return rb
}

// DependsOn returns a reference to another region and records that this
// region's entry requirement uses it. Build rejects dependency loops.
func (rb *RegionBuilder) DependsOn(name string) *RegionRef {
	ref := rb.Ref(name)
	rb.r.deps = append(rb.r.deps, ref)
	return ref
}

// Ref returns a reference to another region for use in location, boss and
// reward requirements.
func (rb *RegionBuilder) Ref(name string) *RegionRef {
	ref := &RegionRef{name: name, from: rb.r, tracer: rb.b.tracer}
	rb.b.regionRefs = append(rb.b.regionRefs, ref)
	return ref
}

// LocationRef returns a reference to a location by name, in any region.
func (rb *RegionBuilder) LocationRef(name string) *LocationRef {
	ref := &LocationRef{name: name}
	rb.b.locationRefs = append(rb.b.locationRefs, ref)
	return ref
}

// Location adds a location directly to the region. A nil access
// requirement means the location is available whenever the region is.
func (rb *RegionBuilder) Location(name string, vanilla items.ItemType, access Requirement, opts ...LocationOption) *Location {
	return rb.b.newLocation(rb.r, nil, name, vanilla, access, opts)
}

// Room adds a room whose locations all share canEnter.
func (rb *RegionBuilder) Room(name string, canEnter Requirement) *RoomBuilder {
	room := &Room{Name: name, Region: rb.r, canEnter: canEnter}
	rb.r.Rooms = append(rb.r.Rooms, room)
	return &RoomBuilder{b: rb.b, room: room}
}

// Boss adds a boss facet. canBeat holds the boss-room requirements and
// canExit the routes back out; either may be nil.
func (rb *RegionBuilder) Boss(t items.BossType, canBeat, canExit Requirement) *RegionBuilder {
	if rb.r.Boss != nil {
		rb.b.errs = append(rb.b.errs, fmt.Errorf("region %q: %w: second boss %v", rb.r.Name, ErrDuplicate, t))
		return rb
	}
	rb.r.Boss = &BossFacet{Type: t, canBeat: canBeat, canExit: canExit}
	return rb
}

// Reward adds a reward facet with a default reward that the tracker may
// change. A nil canRetrieve means beating the boss.
func (rb *RegionBuilder) Reward(t items.RewardType, canRetrieve Requirement) *RegionBuilder {
	rb.r.Reward = &RewardFacet{Type: t, canRetrieve: canRetrieve}
	return rb
}

// FixedReward adds a reward facet the tracker cannot change.
func (rb *RegionBuilder) FixedReward(t items.RewardType, canRetrieve Requirement) *RegionBuilder {
	rb.r.Reward = &RewardFacet{Type: t, Fixed: true, canRetrieve: canRetrieve}
	return rb
}

// Treasure adds a treasure count.
func (rb *RegionBuilder) Treasure(total int) *RegionBuilder {
	rb.r.Treasure = &TreasureFacet{Total: total, Remaining: total}
	return rb
}

// Prerequisite gates the region on a medallion, def until marked.
func (rb *RegionBuilder) Prerequisite(def items.ItemType) *PrerequisiteFacet {
	rb.r.Prerequisite = &PrerequisiteFacet{Medallion: def, Default: def}
	return rb.r.Prerequisite
}

// RoomBuilder defines the locations of one room.
type RoomBuilder struct {
	b    *Builder
	room *Room
}

// Room returns the room being defined.
func (rb *RoomBuilder) Room() *Room { return rb.room }

// Location adds a location to the room.
func (rb *RoomBuilder) Location(name string, vanilla items.ItemType, access Requirement, opts ...LocationOption) *Location {
	return rb.b.newLocation(rb.room.Region, rb.room, name, vanilla, access, opts)
}
