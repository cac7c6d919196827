package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionBusy is returned when the session lock could not be taken
	// before the wait ran out.
	ErrSessionBusy = errors.New("session is busy")
)

// Publisher receives session lifecycle and tracker events. The Redis
// broadcaster implements it.
type Publisher interface {
	PublishSessionCreated(ctx context.Context, id uuid.UUID) error
	PublishSessionDeleted(ctx context.Context, id uuid.UUID) error
	PublishTrackerEvent(ctx context.Context, ev tracker.Event) error
}

// Manager loads, mutates and persists tracker sessions. Every mutation
// runs under the session lock: load, apply, save, then publish.
type Manager struct {
	storage     storage.Storage
	locker      Locker
	publisher   Publisher
	logger      *slog.Logger
	defaults    *settings.Config
	trackerOpts []tracker.Option

	lockWait time.Duration
	lockPoll time.Duration
}

type Option func(*Manager)

// WithPublisher forwards events to p after each successful save.
func WithPublisher(p Publisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithLocker replaces the default in-process locker.
func WithLocker(l Locker) Option {
	return func(m *Manager) { m.locker = l }
}

// WithDefaults sets the settings used when Create is given none.
func WithDefaults(cfg *settings.Config) Option {
	return func(m *Manager) { m.defaults = cfg.Clone() }
}

// WithTrackerOptions passes opts to every tracker the manager builds.
func WithTrackerOptions(opts ...tracker.Option) Option {
	return func(m *Manager) { m.trackerOpts = append(m.trackerOpts, opts...) }
}

// WithLockWait bounds how long Update waits for a busy session.
func WithLockWait(wait time.Duration) Option {
	return func(m *Manager) { m.lockWait = wait }
}

func NewManager(store storage.Storage, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		storage:  store,
		locker:   NewLocalLocker(),
		logger:   logger,
		defaults: settings.Default(),
		lockWait: 5 * time.Second,
		lockPoll: 25 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) options() []tracker.Option {
	return append([]tracker.Option{tracker.WithLogger(m.logger)}, m.trackerOpts...)
}

// Create starts a new session. A nil cfg uses the manager's defaults.
func (m *Manager) Create(ctx context.Context, cfg *settings.Config) (*tracker.Tracker, error) {
	if cfg == nil {
		cfg = m.defaults
	}
	tr, err := tracker.New(cfg.Clone(), m.options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	snap := tr.Snapshot()
	if err := m.storage.SaveSession(ctx, &snap); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	m.logger.Info("Session created", "session_id", tr.ID().String(), "keysanity", cfg.Keysanity.String())
	if m.publisher != nil {
		if err := m.publisher.PublishSessionCreated(ctx, tr.ID()); err != nil {
			m.logger.Error("Failed to publish session created", "session_id", tr.ID().String(), "error", err)
		}
	}
	return tr, nil
}

// Get restores a session for reading. Changes made to the returned
// tracker are not saved.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*tracker.Tracker, error) {
	snap, err := m.storage.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	tr, err := tracker.Restore(*snap, m.options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return tr, nil
}

// Update applies fn to the session under its lock and saves the result.
// Nothing is saved or published when fn fails.
func (m *Manager) Update(ctx context.Context, id uuid.UUID, fn func(*tracker.Tracker) error) (*tracker.Tracker, error) {
	release, err := m.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	tr, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var events []tracker.Event
	unsubscribe := tr.Subscribe(func(ev tracker.Event) {
		events = append(events, ev)
	})
	err = fn(tr)
	unsubscribe()
	if err != nil {
		return nil, err
	}

	snap := tr.Snapshot()
	snap.UpdatedAt = time.Now()
	if err := m.storage.SaveSession(ctx, &snap); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if m.publisher != nil {
		for _, ev := range events {
			if err := m.publisher.PublishTrackerEvent(ctx, ev); err != nil {
				m.logger.Error("Failed to publish tracker event", "session_id", id.String(), "kind", ev.Kind, "error", err)
			}
		}
	}
	return tr, nil
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	snap, err := m.storage.LoadSession(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if snap == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := m.storage.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger.Info("Session deleted", "session_id", id.String())
	if m.publisher != nil {
		if err := m.publisher.PublishSessionDeleted(ctx, id); err != nil {
			m.logger.Error("Failed to publish session deleted", "session_id", id.String(), "error", err)
		}
	}
	return nil
}

// List returns the IDs of stored sessions.
func (m *Manager) List(ctx context.Context) ([]uuid.UUID, error) {
	return m.storage.ListSessions(ctx)
}

// Preset loads a named settings preset.
func (m *Manager) Preset(ctx context.Context, name string) (*settings.Config, error) {
	return m.storage.GetPreset(ctx, name)
}

// Presets lists the available settings presets.
func (m *Manager) Presets(ctx context.Context) ([]string, error) {
	return m.storage.ListPresets(ctx)
}

func (m *Manager) acquire(ctx context.Context, id uuid.UUID) (func(), error) {
	deadline := time.Now().Add(m.lockWait)
	for {
		release, ok, err := m.locker.Acquire(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			return release, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrSessionBusy, id)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrSessionBusy, ctx.Err())
		case <-time.After(m.lockPoll):
		}
	}
}
