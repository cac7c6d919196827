// Package settings holds the world configuration that logic predicates read
// while they evaluate.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// KeysanityMode selects which game's keys are shuffled into the item pool.
type KeysanityMode int

const (
	KeysanityNone KeysanityMode = iota
	KeysanityZelda
	KeysanityMetroid
	KeysanityBoth
)

var keysanityNames = map[KeysanityMode]string{
	KeysanityNone:    "none",
	KeysanityZelda:   "zelda",
	KeysanityMetroid: "metroid",
	KeysanityBoth:    "both",
}

func (m KeysanityMode) String() string {
	if s, ok := keysanityNames[m]; ok {
		return s
	}
	return fmt.Sprintf("KeysanityMode(%d)", int(m))
}

func (m KeysanityMode) MarshalText() ([]byte, error) {
	if _, ok := keysanityNames[m]; !ok {
		return nil, fmt.Errorf("unknown keysanity mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *KeysanityMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range keysanityNames {
		if v == s {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("unknown keysanity mode %q", string(text))
}

// WallJumpDifficulty is the hardest wall jump logic may expect of the
// player. Higher values accept everything lower values accept.
type WallJumpDifficulty int

const (
	WallJumpEasy WallJumpDifficulty = iota
	WallJumpMedium
	WallJumpHard
	WallJumpInsane
)

var wallJumpNames = map[WallJumpDifficulty]string{
	WallJumpEasy:   "easy",
	WallJumpMedium: "medium",
	WallJumpHard:   "hard",
	WallJumpInsane: "insane",
}

func (d WallJumpDifficulty) String() string {
	if s, ok := wallJumpNames[d]; ok {
		return s
	}
	return fmt.Sprintf("WallJumpDifficulty(%d)", int(d))
}

func (d WallJumpDifficulty) MarshalText() ([]byte, error) {
	if _, ok := wallJumpNames[d]; !ok {
		return nil, fmt.Errorf("unknown wall jump difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *WallJumpDifficulty) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range wallJumpNames {
		if v == s {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown wall jump difficulty %q", string(text))
}

// LogicConfig toggles individual tricks and restrictions.
type LogicConfig struct {
	// PreventFivePowerBombSeed requires two power bombs wherever one would
	// otherwise do.
	PreventFivePowerBombSeed bool `json:"prevent_five_power_bomb_seed" yaml:"prevent_five_power_bomb_seed"`
	// InfiniteBombJump lets bomb jumping stand in for flight.
	InfiniteBombJump bool `json:"infinite_bomb_jump" yaml:"infinite_bomb_jump"`
	// MockBall lets Morph Ball momentum stand in for the Speed Booster.
	MockBall bool `json:"mock_ball" yaml:"mock_ball"`
	// FireRodDarkRooms accepts the Fire Rod as a light source in dark rooms.
	FireRodDarkRooms bool `json:"fire_rod_dark_rooms" yaml:"fire_rod_dark_rooms"`
	// WaterwayNeedsGravitySuit requires Gravity Suit for the Waterway item.
	WaterwayNeedsGravitySuit bool `json:"waterway_needs_gravity_suit" yaml:"waterway_needs_gravity_suit"`
	// LaunchPadRequiresIceBeam requires Ice Beam for the Maridia launch pad.
	LaunchPadRequiresIceBeam bool `json:"launch_pad_requires_ice_beam" yaml:"launch_pad_requires_ice_beam"`
	// LeftSandPitRequiresSpringBall requires Spring Ball for the left sand pit.
	LeftSandPitRequiresSpringBall bool `json:"left_sand_pit_requires_spring_ball" yaml:"left_sand_pit_requires_spring_ball"`
	// EasyEastCrateriaSkyItem requires Space Jump or Speed Booster for the
	// sky item in East Crateria instead of Grapple.
	EasyEastCrateriaSkyItem bool `json:"easy_east_crateria_sky_item" yaml:"easy_east_crateria_sky_item"`
	// KholdstareNeedsCaneOfSomaria requires Somaria to reach Kholdstare.
	KholdstareNeedsCaneOfSomaria bool `json:"kholdstare_needs_cane_of_somaria" yaml:"kholdstare_needs_cane_of_somaria"`
	// EasyBlueBrinstarTop requires Gravity or Space Jump for the top of
	// Blue Brinstar.
	EasyBlueBrinstarTop bool `json:"easy_blue_brinstar_top" yaml:"easy_blue_brinstar_top"`
	// LightWorldSouthFakeFlippers allows fake flipping to Lake Hylia Island.
	LightWorldSouthFakeFlippers bool `json:"light_world_south_fake_flippers" yaml:"light_world_south_fake_flippers"`
	// PreventScrewAttackSoftLock requires Morph bombs alongside Screw Attack
	// where Screw Attack alone could strand the player.
	PreventScrewAttackSoftLock bool `json:"prevent_screw_attack_soft_lock" yaml:"prevent_screw_attack_soft_lock"`
}

// Config is the world configuration. Predicates hold a pointer to it and
// read it on every evaluation, so edits take effect on the next refresh.
// Edits never add or remove nodes from an existing world.
type Config struct {
	Keysanity          KeysanityMode      `json:"keysanity" yaml:"keysanity"`
	WallJumpDifficulty WallJumpDifficulty `json:"wall_jump_difficulty" yaml:"wall_jump_difficulty"`
	Logic              LogicConfig        `json:"logic" yaml:"logic"`

	// GanonsTowerCrystalCount is how many crystals open Ganon's Tower.
	GanonsTowerCrystalCount int `json:"ganons_tower_crystal_count" yaml:"ganons_tower_crystal_count"`
	// GanonCrystalCount is how many crystals open the pyramid hole.
	GanonCrystalCount int `json:"ganon_crystal_count" yaml:"ganon_crystal_count"`
	// TourianBossCount is how many Golden Four bosses open Tourian.
	TourianBossCount int `json:"tourian_boss_count" yaml:"tourian_boss_count"`

	// AssumeAllKeys widens AvailableWithKeys to keys of every dungeon rather
	// than only the dungeon a location sits in.
	AssumeAllKeys bool `json:"assume_all_keys" yaml:"assume_all_keys"`
	// AutoTrackOnClear tracks a location's known item when it is cleared.
	AutoTrackOnClear bool `json:"auto_track_on_clear" yaml:"auto_track_on_clear"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Keysanity:               KeysanityNone,
		WallJumpDifficulty:      WallJumpMedium,
		GanonsTowerCrystalCount: 7,
		GanonCrystalCount:       7,
		TourianBossCount:        4,
		AutoTrackOnClear:        true,
	}
}

// ZeldaKeysanity reports whether Zelda dungeon keys are shuffled.
func (c *Config) ZeldaKeysanity() bool {
	return c.Keysanity == KeysanityZelda || c.Keysanity == KeysanityBoth
}

// MetroidKeysanity reports whether Super Metroid keycards are shuffled.
func (c *Config) MetroidKeysanity() bool {
	return c.Keysanity == KeysanityMetroid || c.Keysanity == KeysanityBoth
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks ranges. It returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := keysanityNames[c.Keysanity]; !ok {
		errs = append(errs, fmt.Errorf("keysanity: unknown mode %d", int(c.Keysanity)))
	}
	if _, ok := wallJumpNames[c.WallJumpDifficulty]; !ok {
		errs = append(errs, fmt.Errorf("wall_jump_difficulty: unknown difficulty %d", int(c.WallJumpDifficulty)))
	}
	if c.GanonsTowerCrystalCount < 0 || c.GanonsTowerCrystalCount > 7 {
		errs = append(errs, fmt.Errorf("ganons_tower_crystal_count: must be between 0 and 7, got %d", c.GanonsTowerCrystalCount))
	}
	if c.GanonCrystalCount < 0 || c.GanonCrystalCount > 7 {
		errs = append(errs, fmt.Errorf("ganon_crystal_count: must be between 0 and 7, got %d", c.GanonCrystalCount))
	}
	if c.TourianBossCount < 0 || c.TourianBossCount > 4 {
		errs = append(errs, fmt.Errorf("tourian_boss_count: must be between 0 and 4, got %d", c.TourianBossCount))
	}
	return errors.Join(errs...)
}
