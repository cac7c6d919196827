package world

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

// RegionRef is a handle to a region by name, resolved when the world is
// built. Definitions use it to call another region's entry requirement
// without caring about definition order.
type RegionRef struct {
	name   string
	from   *Region
	target *Region
	tracer *tracer
}

// Name returns the referenced region's name.
func (ref *RegionRef) Name() string {
	return ref.name
}

// Region returns the resolved region, nil before Build.
func (ref *RegionRef) Region() *Region {
	return ref.target
}

// CanEnter calls the referenced region's entry requirement.
func (ref *RegionRef) CanEnter(p progression.Progression, requireRewards bool) bool {
	if t := ref.tracer; t != nil && t.active {
		t.record(t.from, ref.target)
		return t.stub
	}
	return ref.target.CanEnter(p, requireRewards)
}

// CanBeatBoss calls the referenced region's boss requirement.
func (ref *RegionRef) CanBeatBoss(p progression.Progression) bool {
	if t := ref.tracer; t != nil && t.active {
		t.record(t.from, ref.target)
		return t.stub
	}
	return ref.target.CanBeatBoss(p)
}

// LocationRef is a handle to a location by name, resolved when the world
// is built.
type LocationRef struct {
	name   string
	target *Location
}

// Name returns the referenced location's name.
func (ref *LocationRef) Name() string {
	return ref.name
}

// Location returns the resolved location, nil before Build.
func (ref *LocationRef) Location() *Location {
	return ref.target
}

// ItemIs reports whether the referenced location holds t.
func (ref *LocationRef) ItemIs(t items.ItemType) bool {
	return ref.target != nil && ref.target.Item == t
}

// tracer records which regions an entry requirement reaches while Build
// probes it. It is only active during Build.
type tracer struct {
	active bool
	stub   bool
	from   *Region
	edges  []edge
}

type edge struct {
	from, to RegionID
}

func (t *tracer) record(from, to *Region) {
	if from == nil || to == nil {
		return
	}
	t.edges = append(t.edges, edge{from: from.ID, to: to.ID})
}
