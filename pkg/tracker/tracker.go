// Package tracker holds a play session: the tracked progression, the world
// it is evaluated against and the subscribers that want to hear about
// accessibility changes.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/game"
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	"github.com/jwebster45206/smz3-tracker/pkg/search"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// Tracker is one session. Every mutation takes the lock, updates the
// progression or node state, refreshes accessibility and releases the lock
// before listeners run, so readers never see a half-applied change.
//
// Listeners hear events in mutation order, one at a time. A listener may read
// the tracker but must not mutate it.
type Tracker struct {
	mu        sync.Mutex
	id        uuid.UUID
	cfg       *settings.Config
	world     *world.World
	tracked   progression.Progression
	updatedAt time.Time

	logger     *slog.Logger
	searchOpts search.Options

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int

	// Turns are taken under mu and delivered in order.
	turns       uint64
	deliverMu   sync.Mutex
	deliverCond *sync.Cond
	delivered   uint64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. It defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithSearchOptions bounds GetMissingRequiredItems.
func WithSearchOptions(o search.Options) Option {
	return func(t *Tracker) { t.searchOpts = o }
}

// New starts a fresh session for cfg. A nil cfg uses settings.Default.
func New(cfg *settings.Config, opts ...Option) (*Tracker, error) {
	if cfg == nil {
		cfg = settings.Default()
	}
	return restore(uuid.New(), cfg, progression.New(), nil, time.Now(), opts)
}

// Restore rebuilds a session from a snapshot.
func Restore(s Snapshot, opts ...Option) (*Tracker, error) {
	if s.ID == uuid.Nil {
		return nil, fmt.Errorf("snapshot has no session id")
	}
	cfg := s.Settings
	if cfg == nil {
		cfg = settings.Default()
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return restore(s.ID, cfg, s.Progression, &s.World, updated, opts)
}

func restore(id uuid.UUID, cfg *settings.Config, tracked progression.Progression, state *world.State, updated time.Time, opts []Option) (*Tracker, error) {
	w, err := game.BuildWorld(cfg, state)
	if err != nil {
		return nil, err
	}
	t := &Tracker{
		id:        id,
		cfg:       cfg,
		world:     w,
		tracked:   tracked,
		updatedAt: updated,
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}
	t.deliverCond = sync.NewCond(&t.deliverMu)
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("session_id", id)
	if _, err := w.Refresh(t.tracked); err != nil {
		return nil, fmt.Errorf("initial refresh failed: %w", err)
	}
	return t, nil
}

// ID returns the session ID.
func (t *Tracker) ID() uuid.UUID { return t.id }

// Settings returns a copy of the world settings.
func (t *Tracker) Settings() *settings.Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg.Clone()
}

// Progression returns the tracked items, rewards and bosses. Rewards and
// bosses recorded on the world are not included; see Effective.
func (t *Tracker) Progression() progression.Progression {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracked
}

// Effective returns the progression nodes are evaluated against.
func (t *Tracker) Effective() progression.Progression {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.world.Effective(t.tracked)
}

// Subscribe registers fn for session events and returns a function that
// removes it.
func (t *Tracker) Subscribe(fn Listener) func() {
	t.listenerMu.Lock()
	defer t.listenerMu.Unlock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.listenerMu.Lock()
		defer t.listenerMu.Unlock()
		delete(t.listeners, id)
	}
}

func (t *Tracker) notify(ev Event) {
	t.listenerMu.Lock()
	fns := make([]Listener, 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.listenerMu.Unlock()

	ev.SessionID = t.id
	for _, fn := range fns {
		fn(ev)
	}
}

// mutate runs fn under the lock, refreshes every node and then notifies
// listeners. fn returns the event subject.
func (t *Tracker) mutate(kind EventKind, fn func() (string, error)) ([]world.Change, error) {
	t.mu.Lock()
	subject, err := fn()
	if err != nil {
		t.mu.Unlock()
		return nil, err
	}
	changes, err := t.world.Refresh(t.tracked)
	t.updatedAt = time.Now()
	if err != nil {
		t.mu.Unlock()
		return nil, fmt.Errorf("refresh failed: %w", err)
	}
	turn := t.takeTurn()
	t.mu.Unlock()

	t.logger.Info("Tracker updated", "kind", kind, "subject", subject, "changed", len(changes))
	t.deliver(turn, Event{Kind: kind, Subject: subject, Changes: changes})
	return changes, nil
}

// takeTurn reserves the next delivery slot. The caller holds mu.
func (t *Tracker) takeTurn() uint64 {
	turn := t.turns
	t.turns++
	return turn
}

// deliver waits for earlier turns, notifies listeners when ev carries
// changes and then passes the turn on.
func (t *Tracker) deliver(turn uint64, ev Event) {
	t.deliverMu.Lock()
	for t.delivered != turn {
		t.deliverCond.Wait()
	}
	t.deliverMu.Unlock()

	if len(ev.Changes) > 0 {
		t.notify(ev)
	}

	t.deliverMu.Lock()
	t.delivered++
	t.deliverCond.Broadcast()
	t.deliverMu.Unlock()
}

// Track adds one unit of item.
func (t *Tracker) Track(item items.ItemType) ([]world.Change, error) {
	return t.mutate(EventTrack, func() (string, error) {
		if !item.Valid() || item == items.Nothing {
			return "", fmt.Errorf("cannot track item %d", int(item))
		}
		t.tracked = t.tracked.Add(item)
		return item.String(), nil
	})
}

// Untrack removes one unit of item.
func (t *Tracker) Untrack(item items.ItemType) ([]world.Change, error) {
	return t.mutate(EventUntrack, func() (string, error) {
		if !item.Valid() || item == items.Nothing {
			return "", fmt.Errorf("cannot untrack item %d", int(item))
		}
		t.tracked = t.tracked.Remove(item)
		return item.String(), nil
	})
}

// SetBossDefeated marks a boss defeated or not.
func (t *Tracker) SetBossDefeated(boss items.BossType, defeated bool) ([]world.Change, error) {
	return t.mutate(EventBoss, func() (string, error) {
		if _, err := t.world.SetBossDefeated(boss, defeated); err != nil {
			return "", err
		}
		return boss.String(), nil
	})
}

// SetRewardObtained records a region's reward and whether it was
// collected. items.NoReward keeps the reward already on the region.
func (t *Tracker) SetRewardObtained(region string, reward items.RewardType, obtained bool) ([]world.Change, error) {
	return t.mutate(EventReward, func() (string, error) {
		r, err := t.world.RegionByName(region)
		if err != nil {
			return "", err
		}
		if _, err := t.world.SetReward(r.ID, reward, obtained); err != nil {
			return "", err
		}
		return r.Name, nil
	})
}

// ClearLocation marks a location cleared. With AutoTrackOnClear set, the
// item known to be there is tracked as well.
func (t *Tracker) ClearLocation(name string) ([]world.Change, error) {
	return t.mutate(EventClear, func() (string, error) {
		l, err := t.world.LocationByName(name)
		if err != nil {
			return "", err
		}
		if l.Cleared {
			return l.Name, nil
		}
		if _, err := t.world.SetLocationCleared(l.ID, true); err != nil {
			return "", err
		}
		if t.cfg.AutoTrackOnClear && l.Item != items.Nothing {
			t.tracked = t.tracked.Add(l.Item)
		}
		return l.Name, nil
	})
}

// UnclearLocation reverts ClearLocation. Tracked items are left alone.
func (t *Tracker) UnclearLocation(name string) ([]world.Change, error) {
	return t.mutate(EventUnclear, func() (string, error) {
		l, err := t.world.LocationByName(name)
		if err != nil {
			return "", err
		}
		if _, err := t.world.SetLocationCleared(l.ID, false); err != nil {
			return "", err
		}
		return l.Name, nil
	})
}

// MarkLocation records the item the player saw at a location.
func (t *Tracker) MarkLocation(name string, item items.ItemType) ([]world.Change, error) {
	return t.mutate(EventMark, func() (string, error) {
		l, err := t.world.LocationByName(name)
		if err != nil {
			return "", err
		}
		if _, err := t.world.SetMarkedItem(l.ID, item); err != nil {
			return "", err
		}
		return l.Name, nil
	})
}

// SetLocationItem records the item placed at a location, as read from a
// spoiler log or the game's memory.
func (t *Tracker) SetLocationItem(name string, item items.ItemType) ([]world.Change, error) {
	return t.mutate(EventItem, func() (string, error) {
		l, err := t.world.LocationByName(name)
		if err != nil {
			return "", err
		}
		if _, err := t.world.SetLocationItem(l.ID, item); err != nil {
			return "", err
		}
		return l.Name, nil
	})
}

// SetMedallion records the medallion a region requires.
func (t *Tracker) SetMedallion(region string, medallion items.ItemType) ([]world.Change, error) {
	return t.mutate(EventMedallion, func() (string, error) {
		r, err := t.world.RegionByName(region)
		if err != nil {
			return "", err
		}
		if _, err := t.world.SetMedallion(r.ID, medallion); err != nil {
			return "", err
		}
		return r.Name, nil
	})
}

// RefreshAccessibility recomputes the given nodes, or all nodes. Listeners
// hear about it only when something changed.
func (t *Tracker) RefreshAccessibility(nodes ...world.NodeRef) ([]world.Change, error) {
	t.mu.Lock()
	changes, err := t.world.Refresh(t.tracked, nodes...)
	if err != nil {
		t.mu.Unlock()
		return changes, err
	}
	turn := t.takeTurn()
	t.mu.Unlock()

	t.logger.Debug("Refreshed accessibility", "nodes", len(nodes), "changed", len(changes))
	t.deliver(turn, Event{Kind: EventRefresh, Changes: changes})
	return changes, nil
}

// GetMissingRequiredItems searches for what node needs beyond baseline.
func (t *Tracker) GetMissingRequiredItems(ctx context.Context, node world.NodeRef, baseline progression.Progression) (search.Result, error) {
	return t.missing(ctx, node, &baseline)
}

// MissingItems searches for what node needs beyond the current effective
// progression.
func (t *Tracker) MissingItems(ctx context.Context, node world.NodeRef) (search.Result, error) {
	return t.missing(ctx, node, nil)
}

// MissingItemsFromEmpty searches for what node needs from a fresh start.
// Keys that are not shuffled are assumed, as they are for the current
// progression.
func (t *Tracker) MissingItemsFromEmpty(ctx context.Context, node world.NodeRef) (search.Result, error) {
	t.mu.Lock()
	baseline := t.world.EmptyBaseline()
	t.mu.Unlock()
	return t.missing(ctx, node, &baseline)
}

func (t *Tracker) missing(ctx context.Context, node world.NodeRef, baseline *progression.Progression) (search.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	req, err := t.world.Requirement(node)
	if err != nil {
		return search.Result{}, err
	}
	if baseline == nil {
		current := t.world.Effective(t.tracked)
		baseline = &current
	}
	res := search.MissingRequiredItems(ctx, req, *baseline, t.searchOpts)
	if res.Unsatisfiable {
		name, _ := t.world.NodeName(node)
		t.logger.Error("Node cannot be satisfied by any item combination", "node", name)
	}
	return res, nil
}
