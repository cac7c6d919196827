package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, KeysanityNone, cfg.Keysanity)
	assert.Equal(t, WallJumpMedium, cfg.WallJumpDifficulty)
	assert.Equal(t, 7, cfg.GanonsTowerCrystalCount)
	assert.Equal(t, 4, cfg.TourianBossCount)
	assert.NoError(t, cfg.Validate())
}

func TestKeysanityModes(t *testing.T) {
	tests := []struct {
		mode    KeysanityMode
		zelda   bool
		metroid bool
	}{
		{KeysanityNone, false, false},
		{KeysanityZelda, true, false},
		{KeysanityMetroid, false, true},
		{KeysanityBoth, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := &Config{Keysanity: tt.mode}
			assert.Equal(t, tt.zelda, cfg.ZeldaKeysanity())
			assert.Equal(t, tt.metroid, cfg.MetroidKeysanity())
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{
			name: "yaml by extension",
			ext:  ".yml",
			data: "keysanity: both\nwall_jump_difficulty: hard\nlogic:\n  prevent_five_power_bomb_seed: true\ntourian_boss_count: 2\n",
		},
		{
			name: "json by extension",
			ext:  ".json",
			data: `{"keysanity":"both","wall_jump_difficulty":"hard","logic":{"prevent_five_power_bomb_seed":true},"tourian_boss_count":2}`,
		},
		{
			name: "json sniffed",
			data: `  {"keysanity":"BOTH","wall_jump_difficulty":"Hard","logic":{"prevent_five_power_bomb_seed":true},"tourian_boss_count":2}`,
		},
		{
			name: "yaml sniffed",
			data: "keysanity: both\nwall_jump_difficulty: hard\nlogic:\n  prevent_five_power_bomb_seed: true\ntourian_boss_count: 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, KeysanityBoth, cfg.Keysanity)
			assert.Equal(t, WallJumpHard, cfg.WallJumpDifficulty)
			assert.True(t, cfg.Logic.PreventFivePowerBombSeed)
			assert.Equal(t, 2, cfg.TourianBossCount)
			// untouched fields keep their defaults
			assert.Equal(t, 7, cfg.GanonCrystalCount)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]byte("keysanity: sometimes\n"), ".yaml")
	assert.Error(t, err)

	_, err = Load([]byte(`{"tourian_boss_count": 9}`), ".json")
	assert.ErrorContains(t, err, "tourian_boss_count")

	_, err = Load([]byte(`{"ganon_crystal_count": -1, "ganons_tower_crystal_count": 8}`), "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "ganon_crystal_count")
	assert.ErrorContains(t, err, "ganons_tower_crystal_count")
}

func TestLoadFromPath_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Keysanity = KeysanityMetroid
	cfg.WallJumpDifficulty = WallJumpInsane
	cfg.Logic.MockBall = true

	data, err := Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	cp.Logic.MockBall = true
	assert.False(t, cfg.Logic.MockBall)
}
