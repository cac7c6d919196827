package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

// Build resolves references, checks the definitions and returns the world.
// Unknown references, duplicate names and entry dependency loops are
// errors naming the offending node.
func (b *Builder) Build() (*World, error) {
	w := &World{
		cfg:             b.cfg,
		logic:           b.logic,
		regions:         b.regions,
		locationsByID:   make(map[LocationID]*Location),
		locationsByName: make(map[string]*Location),
		regionsByName:   make(map[string]*Region),
		bosses:          make(map[items.BossType]*Region),
	}

	errs := append([]error(nil), b.errs...)
	for _, r := range b.regions {
		key := items.Normalize(r.Name)
		if _, ok := w.regionsByName[key]; ok {
			errs = append(errs, fmt.Errorf("region %q: %w", r.Name, ErrDuplicate))
			continue
		}
		w.regionsByName[key] = r

		if r.Boss != nil {
			if other, ok := w.bosses[r.Boss.Type]; ok {
				errs = append(errs, fmt.Errorf("boss %v in %q and %q: %w", r.Boss.Type, other.Name, r.Name, ErrDuplicate))
			} else {
				w.bosses[r.Boss.Type] = r
			}
		}

		for _, l := range r.Locations {
			key := items.Normalize(l.Name)
			if _, ok := w.locationsByName[key]; ok {
				errs = append(errs, fmt.Errorf("location %q: %w", l.Name, ErrDuplicate))
				continue
			}
			if _, ok := w.locationsByID[l.ID]; ok {
				errs = append(errs, fmt.Errorf("location id %d (%q): %w", l.ID, l.Name, ErrDuplicate))
				continue
			}
			w.locationsByName[key] = l
			w.locationsByID[l.ID] = l
			w.locations = append(w.locations, l)
		}
	}

	for _, ref := range b.regionRefs {
		target, ok := w.regionsByName[items.Normalize(ref.name)]
		if !ok {
			errs = append(errs, fmt.Errorf("region %q refers to region %q: %w", ref.from.Name, ref.name, ErrUnresolvedReference))
			continue
		}
		ref.target = target
	}
	for _, ref := range b.locationRefs {
		target, ok := w.locationsByName[items.Normalize(ref.name)]
		if !ok {
			errs = append(errs, fmt.Errorf("reference to location %q: %w", ref.name, ErrUnresolvedReference))
			continue
		}
		ref.target = target
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := b.checkAcyclic(); err != nil {
		return nil, err
	}

	for _, ref := range b.regionRefs {
		ref.tracer = nil
	}
	return w, nil
}

// checkAcyclic topologically sorts regions by their entry dependencies.
// Declared dependencies are combined with those observed by probing each
// entry requirement with empty and full progressions.
func (b *Builder) checkAcyclic() error {
	edges := mapset.New[edge]()
	for _, r := range b.regions {
		for _, ref := range r.deps {
			edges.Put(edge{from: r.ID, to: ref.target.ID})
		}
	}
	for _, e := range b.probeEntries() {
		edges.Put(e)
	}

	indegree := make([]int, len(b.regions))
	next := make([][]RegionID, len(b.regions))
	edges.Each(func(e edge) {
		// an entry requirement depending on itself is a loop of length one
		next[e.to] = append(next[e.to], e.from)
		indegree[e.from]++
	})

	var queue []RegionID
	for id, n := range indegree {
		if n == 0 {
			queue = append(queue, RegionID(id))
		}
	}
	sorted := mapset.New[RegionID]()
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted.Put(id)
		for _, dependant := range next[id] {
			indegree[dependant]--
			if indegree[dependant] == 0 {
				queue = append(queue, dependant)
			}
		}
	}

	if sorted.Size() == len(b.regions) {
		return nil
	}
	var stuck []string
	for _, r := range b.regions {
		if !sorted.Has(r.ID) {
			stuck = append(stuck, r.Name)
		}
	}
	sort.Strings(stuck)
	return fmt.Errorf("%w between regions: %s", ErrCycle, strings.Join(stuck, ", "))
}

// probeEntries evaluates every entry requirement with references stubbed
// out and returns the region edges that were reached.
func (b *Builder) probeEntries() []edge {
	t := b.tracer
	t.active = true
	defer func() {
		t.active = false
		t.from = nil
	}()

	probes := []progression.Progression{{}, progression.Full()}
	for _, r := range b.regions {
		if r.canEnter == nil {
			continue
		}
		t.from = r
		for _, p := range probes {
			for _, requireRewards := range []bool{true, false} {
				for _, stub := range []bool{true, false} {
					t.stub = stub
					r.canEnter(p, requireRewards)
				}
			}
		}
	}
	return t.edges
}
