package sessions

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

type recordingPublisher struct {
	mu      sync.Mutex
	created []uuid.UUID
	deleted []uuid.UUID
	events  []tracker.Event
}

func (p *recordingPublisher) PublishSessionCreated(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, id)
	return nil
}

func (p *recordingPublisher) PublishSessionDeleted(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *recordingPublisher) PublishTrackerEvent(ctx context.Context, ev tracker.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func newManager(t *testing.T, opts ...Option) (*Manager, *storage.MockStorage, *recordingPublisher) {
	t.Helper()
	store := storage.NewMockStorage()
	pub := &recordingPublisher{}
	opts = append([]Option{WithPublisher(pub)}, opts...)
	return NewManager(store, logger.Discard(), opts...), store, pub
}

func TestManager_CreateAndGet(t *testing.T) {
	defaults := settings.Default()
	defaults.Keysanity = settings.KeysanityMetroid
	m, store, pub := newManager(t, WithDefaults(defaults))
	ctx := context.Background()

	tr, err := m.Create(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tr.ID()}, pub.created)

	snap, err := store.LoadSession(ctx, tr.ID())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, settings.KeysanityMetroid, snap.Settings.Keysanity)

	got, err := m.Get(ctx, tr.ID())
	require.NoError(t, err)
	assert.Equal(t, tr.ID(), got.ID())

	_, err = m.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	bad := settings.Default()
	bad.TourianBossCount = 12
	_, err = m.Create(ctx, bad)
	assert.Error(t, err)
}

func TestManager_Update(t *testing.T) {
	m, _, pub := newManager(t)
	ctx := context.Background()
	tr, err := m.Create(ctx, nil)
	require.NoError(t, err)

	_, err = m.Update(ctx, tr.ID(), func(tr *tracker.Tracker) error {
		_, err := tr.Track(items.ProgressiveGlove)
		return err
	})
	require.NoError(t, err)

	got, err := m.Get(ctx, tr.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Progression().Count(items.ProgressiveGlove))
	require.Len(t, pub.events, 1)
	assert.Equal(t, tracker.EventTrack, pub.events[0].Kind)

	// A failing mutation saves nothing and publishes nothing.
	_, err = m.Update(ctx, tr.ID(), func(tr *tracker.Tracker) error {
		if _, err := tr.Track(items.Hammer); err != nil {
			return err
		}
		return errors.New("rejected")
	})
	assert.EqualError(t, err, "rejected")
	got, err = m.Get(ctx, tr.ID())
	require.NoError(t, err)
	assert.False(t, got.Progression().Hammer())
	assert.Len(t, pub.events, 1)

	_, err = m.Update(ctx, uuid.New(), func(*tracker.Tracker) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_UpdateSaveFailure(t *testing.T) {
	m, store, pub := newManager(t)
	ctx := context.Background()
	tr, err := m.Create(ctx, nil)
	require.NoError(t, err)

	store.SetSaveError(errors.New("redis down"))
	_, err = m.Update(ctx, tr.ID(), func(tr *tracker.Tracker) error {
		_, err := tr.Track(items.Lamp)
		return err
	})
	assert.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestManager_Busy(t *testing.T) {
	m, _, _ := newManager(t, WithLockWait(0))
	ctx := context.Background()
	tr, err := m.Create(ctx, nil)
	require.NoError(t, err)

	release, ok, err := m.locker.Acquire(ctx, tr.ID())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = m.Update(ctx, tr.ID(), func(*tracker.Tracker) error { return nil })
	assert.ErrorIs(t, err, ErrSessionBusy)

	release()
	_, err = m.Update(ctx, tr.ID(), func(*tracker.Tracker) error { return nil })
	assert.NoError(t, err)
}

func TestManager_ConcurrentUpdates(t *testing.T) {
	m, _, _ := newManager(t, WithLockWait(10*time.Second))
	ctx := context.Background()
	tr, err := m.Create(ctx, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, tr.ID(), func(tr *tracker.Tracker) error {
				_, err := tr.Track(items.ETank)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, tr.ID())
	require.NoError(t, err)
	assert.Equal(t, 5, got.Progression().Count(items.ETank))
}

func TestManager_DeleteAndList(t *testing.T) {
	m, _, pub := newManager(t)
	ctx := context.Background()
	tr, err := m.Create(ctx, nil)
	require.NoError(t, err)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tr.ID()}, ids)

	require.NoError(t, m.Delete(ctx, tr.ID()))
	assert.Equal(t, []uuid.UUID{tr.ID()}, pub.deleted)
	assert.ErrorIs(t, m.Delete(ctx, tr.ID()), ErrSessionNotFound)
}

func TestManager_Presets(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()
	cfg := settings.Default()
	cfg.Keysanity = settings.KeysanityBoth
	store.AddPreset("keysanity", cfg)

	names, err := m.Presets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keysanity"}, names)

	got, err := m.Preset(ctx, "keysanity")
	require.NoError(t, err)
	assert.Equal(t, settings.KeysanityBoth, got.Keysanity)

	_, err = m.Preset(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrPresetNotFound)
}

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	var logs bytes.Buffer
	l := NewRedisLocker(client, time.Minute, slog.New(slog.NewTextHandler(&logs, nil)))
	ctx := context.Background()
	id := uuid.New()

	release, ok, err := l.Acquire(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(lockKey(id)))

	_, ok, err = l.Acquire(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists(lockKey(id)))

	// A lock that expired and was taken by someone else is not released.
	release, ok, err = l.Acquire(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	mr.FastForward(2 * time.Minute)
	require.NoError(t, mr.Set(lockKey(id), "someone-else"))
	release()
	got, err := mr.Get(lockKey(id))
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
	assert.Contains(t, logs.String(), "Session lock expired before release")
}

func TestRedisLocker_ReleaseFailureIsLogged(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	var logs bytes.Buffer
	l := NewRedisLocker(client, time.Minute, slog.New(slog.NewTextHandler(&logs, nil)))

	release, ok, err := l.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, ok)

	mr.Close()
	release()
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Failed to release session lock")
}
