// Package zelda defines the A Link to the Past half of the world.
package zelda

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/logic"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// Region names other definitions may refer to.
const (
	LightWorldDeathMountainWest = "Light World Death Mountain West"
	LightWorldDeathMountainEast = "Light World Death Mountain East"
	LightWorldNorthWest         = "Light World North West"
	LightWorldNorthEast         = "Light World North East"
	LightWorldSouth             = "Light World South"
	HyruleCastle                = "Hyrule Castle"
	CastleTower                 = "Castle Tower"
	EasternPalace               = "Eastern Palace"
	DesertPalace                = "Desert Palace"
	TowerOfHera                 = "Tower of Hera"
	DarkWorldDeathMountainWest  = "Dark World Death Mountain West"
	DarkWorldDeathMountainEast  = "Dark World Death Mountain East"
	DarkWorldNorthWest          = "Dark World North West"
	DarkWorldNorthEast          = "Dark World North East"
	DarkWorldSouth              = "Dark World South"
	DarkWorldMire               = "Dark World Mire"
	PalaceOfDarkness            = "Palace of Darkness"
	SwampPalace                 = "Swamp Palace"
	SkullWoods                  = "Skull Woods"
	ThievesTown                 = "Thieves' Town"
	IcePalace                   = "Ice Palace"
	MiseryMire                  = "Misery Mire"
	TurtleRock                  = "Turtle Rock"
	GanonsTower                 = "Ganon's Tower"
	Pyramid                     = "Pyramid of Power"
)

type definer struct {
	b   *world.Builder
	l   *logic.Logic
	cfg *settings.Config
}

// Define adds every Zelda region to b.
func Define(b *world.Builder) {
	d := &definer{b: b, l: b.Logic(), cfg: b.Config()}
	d.deathMountain()
	d.lightWorld()
	d.castle()
	d.lightWorldDungeons()
	d.darkWorld()
	d.palaceOfDarkness()
	d.swampPalace()
	d.skullWoodsAndThievesTown()
	d.icePalace()
	d.miseryMire()
	d.turtleRock()
	d.ganonsTower()
}

// agahnim reports whether Agahnim counts as beaten for entry purposes.
func agahnim(p progression.Progression, requireRewards bool) bool {
	return !requireRewards || p.HasReward(items.RewardAgahnim)
}
