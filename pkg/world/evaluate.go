package world

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

// NodeKind tells which part of the graph a NodeRef points at.
type NodeKind int

const (
	NodeLocation NodeKind = iota
	NodeBoss
	NodeReward
)

var nodeKindNames = [...]string{
	NodeLocation: "location",
	NodeBoss:     "boss",
	NodeReward:   "reward",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
	return nodeKindNames[k]
}

func (k NodeKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return nil, fmt.Errorf("unknown node kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, name := range nodeKindNames {
		if name == s {
			*k = NodeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", string(text))
}

// NodeRef identifies a location, or the boss or reward of a region.
type NodeRef struct {
	Kind     NodeKind   `json:"kind"`
	Location LocationID `json:"location"`
	Region   RegionID   `json:"region"`
}

func LocationNode(id LocationID) NodeRef { return NodeRef{Kind: NodeLocation, Location: id} }
func BossNode(id RegionID) NodeRef       { return NodeRef{Kind: NodeBoss, Region: id} }
func RewardNode(id RegionID) NodeRef     { return NodeRef{Kind: NodeReward, Region: id} }

func (n NodeRef) String() string {
	if n.Kind == NodeLocation {
		return fmt.Sprintf("location:%d", n.Location)
	}
	return fmt.Sprintf("%v:%d", n.Kind, n.Region)
}

// Change reports a node whose accessibility changed during a refresh.
type Change struct {
	Node     NodeRef       `json:"node"`
	Name     string        `json:"name"`
	Previous Accessibility `json:"previous"`
	Current  Accessibility `json:"current"`
}

// EvaluateLocation classifies l given the actual progression and the same
// progression with the location's keys assumed.
func EvaluateLocation(l *Location, actual, withKeys progression.Progression) Accessibility {
	switch {
	case l.Cleared:
		return Cleared
	case l.IsAvailable(actual) && l.SatisfiesTrackerLogic(actual):
		return Available
	case l.IsAvailable(withKeys) && l.SatisfiesTrackerLogic(withKeys):
		return AvailableWithKeys
	case l.IsRelevant(actual) && l.SatisfiesTrackerLogic(actual):
		return Relevant
	case l.IsRelevant(withKeys) && l.SatisfiesTrackerLogic(withKeys):
		return RelevantWithKeys
	default:
		return OutOfLogic
	}
}

// EvaluateBoss classifies the boss of r.
func EvaluateBoss(r *Region, actual, withKeys progression.Progression) Accessibility {
	switch {
	case r.Boss == nil:
		return Unknown
	case r.Boss.Defeated:
		return Cleared
	case r.CanBeatBoss(actual):
		return Available
	case r.CanBeatBoss(withKeys):
		return AvailableWithKeys
	case r.CanEnter(actual, false):
		return Relevant
	case r.CanEnter(withKeys, false):
		return RelevantWithKeys
	default:
		return OutOfLogic
	}
}

// EvaluateReward classifies the reward of r.
func EvaluateReward(r *Region, actual, withKeys progression.Progression) Accessibility {
	switch {
	case r.Reward == nil:
		return Unknown
	case r.Reward.Obtained:
		return Cleared
	case r.CanRetrieveReward(actual):
		return Available
	case r.CanRetrieveReward(withKeys):
		return AvailableWithKeys
	default:
		return OutOfLogic
	}
}

// Nodes lists every location, boss and reward.
func (w *World) Nodes() []NodeRef {
	nodes := make([]NodeRef, 0, len(w.locations)+2*len(w.regions))
	for _, l := range w.locations {
		nodes = append(nodes, LocationNode(l.ID))
	}
	for _, r := range w.regions {
		if r.Boss != nil {
			nodes = append(nodes, BossNode(r.ID))
		}
		if r.Reward != nil {
			nodes = append(nodes, RewardNode(r.ID))
		}
	}
	return nodes
}

// NodeName returns a display name for a node.
func (w *World) NodeName(n NodeRef) (string, error) {
	switch n.Kind {
	case NodeLocation:
		l, err := w.Location(n.Location)
		if err != nil {
			return "", err
		}
		return l.Name, nil
	case NodeBoss:
		r, err := w.bossRegion(n.Region)
		if err != nil {
			return "", err
		}
		return r.Boss.Type.String(), nil
	case NodeReward:
		r, err := w.rewardRegion(n.Region)
		if err != nil {
			return "", err
		}
		return r.Name + " reward", nil
	}
	return "", notFound("node", n)
}

// Requirement returns the predicate that makes node n available:
// location access, beating the boss or retrieving the reward.
func (w *World) Requirement(n NodeRef) (Requirement, error) {
	switch n.Kind {
	case NodeLocation:
		l, err := w.Location(n.Location)
		if err != nil {
			return nil, err
		}
		return l.IsAvailable, nil
	case NodeBoss:
		r, err := w.bossRegion(n.Region)
		if err != nil {
			return nil, err
		}
		return r.CanBeatBoss, nil
	case NodeReward:
		r, err := w.rewardRegion(n.Region)
		if err != nil {
			return nil, err
		}
		return r.CanRetrieveReward, nil
	}
	return nil, notFound("node", n)
}

// Accessibility returns the classification cached by the last refresh.
func (w *World) Accessibility(n NodeRef) (Accessibility, error) {
	switch n.Kind {
	case NodeLocation:
		l, err := w.Location(n.Location)
		if err != nil {
			return Unknown, err
		}
		return l.Accessibility, nil
	case NodeBoss:
		r, err := w.bossRegion(n.Region)
		if err != nil {
			return Unknown, err
		}
		return r.Boss.Accessibility, nil
	case NodeReward:
		r, err := w.rewardRegion(n.Region)
		if err != nil {
			return Unknown, err
		}
		return r.Reward.Accessibility, nil
	}
	return Unknown, notFound("node", n)
}

// Refresh recomputes the accessibility of the given nodes, or of every node
// when none are given, from the tracked items. It returns the nodes whose
// classification changed.
func (w *World) Refresh(tracked progression.Progression, nodes ...NodeRef) ([]Change, error) {
	if len(nodes) == 0 {
		nodes = w.Nodes()
	}
	actual := w.Effective(tracked)
	scoped := make(map[*Region]progression.Progression)
	withKeys := func(r *Region) progression.Progression {
		if p, ok := scoped[r]; ok {
			return p
		}
		p := w.WithKeys(actual, r)
		scoped[r] = p
		return p
	}

	var changes []Change
	for _, n := range nodes {
		var (
			name string
			slot *Accessibility
			next Accessibility
		)
		switch n.Kind {
		case NodeLocation:
			l, err := w.Location(n.Location)
			if err != nil {
				return changes, err
			}
			name, slot = l.Name, &l.Accessibility
			next = EvaluateLocation(l, actual, withKeys(l.Region))
		case NodeBoss:
			r, err := w.bossRegion(n.Region)
			if err != nil {
				return changes, err
			}
			name, slot = r.Boss.Type.String(), &r.Boss.Accessibility
			next = EvaluateBoss(r, actual, withKeys(r))
		case NodeReward:
			r, err := w.rewardRegion(n.Region)
			if err != nil {
				return changes, err
			}
			name, slot = r.Name+" reward", &r.Reward.Accessibility
			next = EvaluateReward(r, actual, withKeys(r))
		default:
			return changes, notFound("node", n)
		}
		if *slot != next {
			changes = append(changes, Change{Node: n, Name: name, Previous: *slot, Current: next})
			*slot = next
		}
	}
	return changes, nil
}

func (w *World) bossRegion(id RegionID) (*Region, error) {
	r, err := w.Region(id)
	if err != nil {
		return nil, err
	}
	if r.Boss == nil {
		return nil, notFound("boss", r.Name)
	}
	return r, nil
}

func (w *World) rewardRegion(id RegionID) (*Region, error) {
	r, err := w.Region(id)
	if err != nil {
		return nil, err
	}
	if r.Reward == nil {
		return nil, notFound("reward", r.Name)
	}
	return r, nil
}

// BossNodeOf returns the node of boss b.
func (w *World) BossNodeOf(b items.BossType) (NodeRef, error) {
	r, err := w.Boss(b)
	if err != nil {
		return NodeRef{}, err
	}
	return BossNode(r.ID), nil
}
