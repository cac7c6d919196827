package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

func setupTestStorage(t *testing.T, dataDir string) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStorage("redis://"+mr.Addr(), dataDir, time.Hour, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func newSession(t *testing.T) *tracker.Tracker {
	t.Helper()
	cfg := settings.Default()
	cfg.Keysanity = settings.KeysanityBoth
	tr, err := tracker.New(cfg, tracker.WithLogger(logger.Discard()))
	require.NoError(t, err)
	_, err = tr.Track(items.MoonPearl)
	require.NoError(t, err)
	_, err = tr.ClearLocation("Link's Uncle")
	require.NoError(t, err)
	return tr
}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	s, mr := setupTestStorage(t, "")
	ctx := context.Background()
	tr := newSession(t)
	snap := tr.Snapshot()

	require.NoError(t, s.SaveSession(ctx, &snap))
	assert.True(t, mr.Exists("tracker:"+tr.ID().String()))
	assert.Equal(t, time.Hour, mr.TTL("tracker:"+tr.ID().String()))

	loaded, err := s.LoadSession(ctx, tr.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, tr.ID(), loaded.ID)
	assert.Equal(t, settings.KeysanityBoth, loaded.Settings.Keysanity)
	assert.True(t, loaded.Progression.Equal(tr.Progression()))

	restored, err := tracker.Restore(*loaded, tracker.WithLogger(logger.Discard()))
	require.NoError(t, err)
	assert.Equal(t, tr.Status(tracker.Filter{}), restored.Status(tracker.Filter{}))
}

func TestRedisStorage_LoadRefreshesTTL(t *testing.T) {
	s, mr := setupTestStorage(t, "")
	ctx := context.Background()
	snap := newSession(t).Snapshot()
	require.NoError(t, s.SaveSession(ctx, &snap))

	mr.FastForward(50 * time.Minute)
	_, err := s.LoadSession(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(sessionKey(snap.ID)))

	mr.FastForward(2 * time.Hour)
	loaded, err := s.LoadSession(ctx, snap.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_LoadMissingSession(t *testing.T) {
	s, _ := setupTestStorage(t, "")
	loaded, err := s.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_LoadCorruptSession(t *testing.T) {
	s, mr := setupTestStorage(t, "")
	id := uuid.New()
	require.NoError(t, mr.Set(sessionKey(id), "{not json"))
	_, err := s.LoadSession(context.Background(), id)
	assert.Error(t, err)
}

func TestRedisStorage_SaveInvalid(t *testing.T) {
	s, _ := setupTestStorage(t, "")
	assert.Error(t, s.SaveSession(context.Background(), nil))
	assert.Error(t, s.SaveSession(context.Background(), &tracker.Snapshot{}))
}

func TestRedisStorage_DeleteAndList(t *testing.T) {
	s, mr := setupTestStorage(t, "")
	ctx := context.Background()

	a := newSession(t).Snapshot()
	b := newSession(t).Snapshot()
	require.NoError(t, s.SaveSession(ctx, &a))
	require.NoError(t, s.SaveSession(ctx, &b))
	require.NoError(t, mr.Set("tracker:not-a-uuid", "x"))
	require.NoError(t, mr.Set("unrelated", "x"))

	ids, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids)

	require.NoError(t, s.DeleteSession(ctx, a.ID))
	ids, err = s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, ids)
}

func TestRedisStorage_Ping(t *testing.T) {
	s, mr := setupTestStorage(t, "")
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.waitForConnection(context.Background(), 1, time.Millisecond))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
	assert.Error(t, s.waitForConnection(context.Background(), 2, time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.waitForConnection(ctx, 5, time.Second))
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", c.Options().Addr)

	c, err = NewClient("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)

	_, err = NewClient("redis://cache:6379/notadb")
	assert.Error(t, err)
}

func TestRedisStorage_Presets(t *testing.T) {
	dir := t.TempDir()
	presets := filepath.Join(dir, "presets")
	require.NoError(t, os.MkdirAll(presets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(presets, "keysanity.yaml"), []byte("keysanity: both\nganon_crystal_count: 5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(presets, "casual.json"), []byte(`{"wall_jump_difficulty":"easy"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(presets, "broken.yml"), []byte("tourian_boss_count: 9\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(presets, "README.txt"), []byte("ignored"), 0o644))

	s, _ := setupTestStorage(t, dir)
	ctx := context.Background()

	names, err := s.ListPresets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "casual", "keysanity"}, names)

	cfg, err := s.GetPreset(ctx, "keysanity")
	require.NoError(t, err)
	assert.Equal(t, settings.KeysanityBoth, cfg.Keysanity)
	assert.Equal(t, 5, cfg.GanonCrystalCount)
	assert.Equal(t, 7, cfg.GanonsTowerCrystalCount)

	cfg, err = s.GetPreset(ctx, "casual")
	require.NoError(t, err)
	assert.Equal(t, settings.WallJumpEasy, cfg.WallJumpDifficulty)

	_, err = s.GetPreset(ctx, "broken")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrPresetNotFound))

	_, err = s.GetPreset(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrPresetNotFound)
	_, err = s.GetPreset(ctx, "../presets/keysanity")
	assert.ErrorIs(t, err, storage.ErrPresetNotFound)
}

func TestRedisStorage_NoPresetsDir(t *testing.T) {
	s, _ := setupTestStorage(t, t.TempDir())
	names, err := s.ListPresets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMockStorage_Sessions(t *testing.T) {
	m := storage.NewMockStorage()
	ctx := context.Background()

	snap := newSession(t).Snapshot()
	require.NoError(t, m.SaveSession(ctx, &snap))

	// Stored copies do not alias the caller's settings.
	snap.Settings.Keysanity = settings.KeysanityNone
	loaded, err := m.LoadSession(ctx, snap.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, settings.KeysanityBoth, loaded.Settings.Keysanity)

	ids, err := m.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{snap.ID}, ids)

	require.NoError(t, m.DeleteSession(ctx, snap.ID))
	loaded, err = m.LoadSession(ctx, snap.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	m.SetSaveError(errors.New("disk full"))
	assert.Error(t, m.SaveSession(ctx, &snap))

	m.SetPingError(errors.New("down"))
	assert.Error(t, m.Ping(ctx))
	m.SetPingError(nil)
	assert.NoError(t, m.Ping(ctx))
}
