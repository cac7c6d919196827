// Package logic derives compound capabilities (flight, power bombs, portal
// access and so on) from a Progression. Every predicate reads the world
// Config at call time and never fails: missing items simply answer false.
package logic

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
)

// Logic evaluates predicates against a shared Config.
type Logic struct {
	cfg *settings.Config
}

// New returns a Logic bound to cfg. A nil cfg uses settings.Default.
func New(cfg *settings.Config) *Logic {
	if cfg == nil {
		cfg = settings.Default()
	}
	return &Logic{cfg: cfg}
}

// Config returns the live configuration.
func (l *Logic) Config() *settings.Config {
	return l.cfg
}

// Zelda

func (l *Logic) CanLiftLight(p progression.Progression) bool { return p.Glove() }
func (l *Logic) CanLiftHeavy(p progression.Progression) bool { return p.Mitt() }

func (l *Logic) CanLightTorches(p progression.Progression) bool {
	return p.FireRod() || p.Lamp()
}

func (l *Logic) CanMeltFreezors(p progression.Progression) bool {
	return p.FireRod() || p.Bombos() && p.Sword()
}

// CanNavigateDarkRooms needs the Lamp, or the Fire Rod when that trick is on.
func (l *Logic) CanNavigateDarkRooms(p progression.Progression) bool {
	return p.Lamp() || l.cfg.Logic.FireRodDarkRooms && p.FireRod()
}

// CanExtendMagic reports whether the player can refill or stretch magic
// enough for the given number of bars.
func (l *Logic) CanExtendMagic(p progression.Progression, bars int) bool {
	multiplier := 1
	if p.HalfMagic() {
		multiplier = 2
	}
	return multiplier*(1+p.Count(items.Bottle)) >= bars
}

func (l *Logic) CanKillManyEnemies(p progression.Progression) bool {
	return p.Sword() || p.Hammer() || p.Bow() || p.FireRod() || p.Somaria() ||
		p.Byrna() && l.CanExtendMagic(p, 2)
}

func (l *Logic) CanBlockLasers(p progression.Progression) bool {
	return p.MirrorShield() || p.Cape() || p.Byrna()
}

func (l *Logic) HasMasterSword(p progression.Progression) bool { return p.MasterSword() }

// CanBeatAgahnim accepts either a real sword or the Hammer.
func (l *Logic) CanBeatAgahnim(p progression.Progression) bool {
	return p.Sword() || p.Hammer()
}

// HasPendants reports whether at least n pendants have been obtained.
func (l *Logic) HasPendants(p progression.Progression, n int) bool {
	return p.Pendants() >= n
}

// HasCrystals reports whether at least n crystals have been obtained.
func (l *Logic) HasCrystals(p progression.Progression, n int) bool {
	return p.Crystals() >= n
}

// HasCrystalsForGanonsTower compares against the configured tower count.
func (l *Logic) HasCrystalsForGanonsTower(p progression.Progression) bool {
	return p.Crystals() >= l.cfg.GanonsTowerCrystalCount
}

// HasCrystalsForGanon compares against the configured pyramid count.
func (l *Logic) HasCrystalsForGanon(p progression.Progression) bool {
	return p.Crystals() >= l.cfg.GanonCrystalCount
}

// HasRedCrystals reports whether both red crystals have been obtained.
func (l *Logic) HasRedCrystals(p progression.Progression) bool {
	return p.CountReward(items.CrystalRed) >= items.CrystalRed.Max()
}

// Portals between the two games

func (l *Logic) CanAccessDeathMountainPortal(p progression.Progression) bool {
	return (l.CanDestroyBombWalls(p) || p.SpeedBooster()) && p.Super() && p.Morph()
}

func (l *Logic) CanAccessDarkWorldPortal(p progression.Progression) bool {
	return l.CardOr(p, items.CardMaridiaL1, l.CanUsePowerBombs(p)) &&
		l.CardOr(p, items.CardMaridiaL2, l.CanUsePowerBombs(p)) &&
		p.Super() && p.Gravity() && p.SpeedBooster()
}

func (l *Logic) CanAccessMiseryMirePortal(p progression.Progression) bool {
	return l.CardOr(p, items.CardNorfairL2, p.SpeedBooster()) &&
		p.Varia() && p.Super() && (p.Gravity() && p.SpaceJump()) && l.CanUsePowerBombs(p)
}

func (l *Logic) CanAccessNorfairUpperPortal(p progression.Progression) bool {
	return p.Flute() || l.CanLiftLight(p) && p.Lamp()
}

func (l *Logic) CanAccessNorfairLowerPortal(p progression.Progression) bool {
	return p.Flute() && l.CanLiftHeavy(p)
}

// CanAccessMaridiaPortal enters Maridia through the Dark World lake portal.
// With rewards required, the way in depends on Agahnim or the Moon Pearl
// route through the Dark World.
func (l *Logic) CanAccessMaridiaPortal(p progression.Progression, requireRewards bool) bool {
	if !p.MoonPearl() || !p.Flippers() || !p.Gravity() || !p.Morph() {
		return false
	}
	agahnim := !requireRewards || p.HasReward(items.RewardAgahnim)
	return agahnim || p.Hammer() && l.CanLiftLight(p) || l.CanLiftHeavy(p)
}

// Super Metroid

// CanIbj reports whether the player can infinite bomb jump.
func (l *Logic) CanIbj(p progression.Progression) bool {
	return p.Morph() && p.Bombs()
}

// CanFly needs Space Jump, or an infinite bomb jump when that trick is on.
func (l *Logic) CanFly(p progression.Progression) bool {
	return p.SpaceJump() || l.cfg.Logic.InfiniteBombJump && l.CanIbj(p)
}

// CanUsePowerBombs needs Morph and one power bomb pack, or two when
// PreventFivePowerBombSeed is set.
func (l *Logic) CanUsePowerBombs(p progression.Progression) bool {
	need := 1
	if l.cfg.Logic.PreventFivePowerBombSeed {
		need = 2
	}
	return p.Morph() && p.Has(items.PowerBomb, need)
}

func (l *Logic) CanPassBombPassages(p progression.Progression) bool {
	return p.Morph() && (p.Bombs() || l.CanUsePowerBombs(p))
}

func (l *Logic) CanDestroyBombWalls(p progression.Progression) bool {
	return l.CanPassBombPassages(p) || l.canUseScrewAttack(p)
}

// canUseScrewAttack guards against Screw Attack soft locks when asked.
func (l *Logic) canUseScrewAttack(p progression.Progression) bool {
	if !p.ScrewAttack() {
		return false
	}
	return !l.cfg.Logic.PreventScrewAttackSoftLock || p.Morph()
}

func (l *Logic) CanSpringBallJump(p progression.Progression) bool {
	return p.Morph() && p.SpringBall()
}

// CanHellRun survives heated rooms with Varia or enough energy.
func (l *Logic) CanHellRun(p progression.Progression) bool {
	return p.Varia() || l.HasEnergyReserves(p, 5)
}

// HasEnergyReserves counts energy tanks and reserve tanks together.
func (l *Logic) HasEnergyReserves(p progression.Progression, n int) bool {
	return p.EnergyReserves() >= n
}

func (l *Logic) CanOpenRedDoors(p progression.Progression) bool {
	return p.Missile() || p.Super()
}

// CanMoveAtHighSpeeds needs the Speed Booster, or mock balling when that
// trick is on.
func (l *Logic) CanMoveAtHighSpeeds(p progression.Progression) bool {
	return p.SpeedBooster() || l.cfg.Logic.MockBall && p.Morph()
}

// CanWallJump compares the requested difficulty with the configured
// ceiling. It never looks at items.
func (l *Logic) CanWallJump(d settings.WallJumpDifficulty) bool {
	return d <= l.cfg.WallJumpDifficulty
}

// CardOr requires card when Metroid keycards are shuffled, and the fallback
// condition otherwise.
func (l *Logic) CardOr(p progression.Progression, card items.ItemType, fallback bool) bool {
	if l.cfg.MetroidKeysanity() {
		return p.Contains(card)
	}
	return fallback
}

// Card requires card only when Metroid keycards are shuffled.
func (l *Logic) Card(p progression.Progression, card items.ItemType) bool {
	return l.CardOr(p, card, true)
}

// CanSafelyUseScrewAttack is Screw Attack with the soft-lock guard applied.
func (l *Logic) CanSafelyUseScrewAttack(p progression.Progression) bool {
	return l.canUseScrewAttack(p)
}
