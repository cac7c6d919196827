package tracker

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// NodeStatus is the display state of one node.
type NodeStatus struct {
	Node          world.NodeRef       `json:"node"`
	Name          string              `json:"name"`
	Region        string              `json:"region"`
	Area          string              `json:"area"`
	Game          string              `json:"game"`
	Accessibility world.Accessibility `json:"accessibility"`
	Item          string              `json:"item,omitempty"`
	MarkedItem    string              `json:"marked_item,omitempty"`
}

// Filter selects nodes for Status. Zero fields match everything.
type Filter struct {
	Kind          *world.NodeKind
	Region        string
	Accessibility *world.Accessibility
}

func (f Filter) match(s NodeStatus) bool {
	if f.Kind != nil && s.Node.Kind != *f.Kind {
		return false
	}
	if f.Region != "" && items.Normalize(f.Region) != items.Normalize(s.Region) {
		return false
	}
	if f.Accessibility != nil && s.Accessibility != *f.Accessibility {
		return false
	}
	return true
}

// Status lists the cached accessibility of the nodes matching f, in
// definition order.
func (t *Tracker) Status(f Filter) []NodeStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []NodeStatus
	for _, l := range t.world.Locations() {
		if s := locationStatus(l); f.match(s) {
			out = append(out, s)
		}
	}
	for _, r := range t.world.Regions() {
		if r.Boss != nil {
			s := NodeStatus{
				Node:          world.BossNode(r.ID),
				Name:          r.Boss.Type.String(),
				Region:        r.Name,
				Area:          r.Area,
				Game:          r.Game.String(),
				Accessibility: r.Boss.Accessibility,
			}
			if f.match(s) {
				out = append(out, s)
			}
		}
		if r.Reward != nil {
			s := NodeStatus{
				Node:          world.RewardNode(r.ID),
				Name:          r.Reward.Type.String(),
				Region:        r.Name,
				Area:          r.Area,
				Game:          r.Game.String(),
				Accessibility: r.Reward.Accessibility,
			}
			if f.match(s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Location returns the status of one location by name.
func (t *Tracker) Location(name string) (NodeStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, err := t.world.LocationByName(name)
	if err != nil {
		return NodeStatus{}, err
	}
	return locationStatus(l), nil
}

func locationStatus(l *world.Location) NodeStatus {
	s := NodeStatus{
		Node:          world.LocationNode(l.ID),
		Name:          l.Name,
		Region:        l.Region.Name,
		Area:          l.Region.Area,
		Game:          l.Region.Game.String(),
		Accessibility: l.Accessibility,
	}
	if l.Item != items.Nothing {
		s.Item = l.Item.String()
	}
	if l.MarkedItem != items.Nothing {
		s.MarkedItem = l.MarkedItem.String()
	}
	return s
}

// LocationNode resolves a location name to its node.
func (t *Tracker) LocationNode(name string) (world.NodeRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, err := t.world.LocationByName(name)
	if err != nil {
		return world.NodeRef{}, err
	}
	return world.LocationNode(l.ID), nil
}

// BossNode resolves a boss to its node.
func (t *Tracker) BossNode(b items.BossType) (world.NodeRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.world.BossNodeOf(b)
}

// RewardNode resolves a region name to its reward node.
func (t *Tracker) RewardNode(region string) (world.NodeRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, err := t.world.RegionByName(region)
	if err != nil {
		return world.NodeRef{}, err
	}
	if r.Reward == nil {
		return world.NodeRef{}, &world.NotFoundError{Kind: "reward", Key: r.Name}
	}
	return world.RewardNode(r.ID), nil
}
