// Package metroid defines the Super Metroid half of the world.
package metroid

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/logic"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// Region names other definitions may refer to.
const (
	CrateriaWest     = "Crateria West"
	CrateriaCentral  = "Crateria Central"
	CrateriaEast     = "Crateria East"
	BrinstarBlue     = "Blue Brinstar"
	BrinstarGreen    = "Green Brinstar"
	BrinstarPink     = "Pink Brinstar"
	BrinstarRed      = "Red Brinstar"
	BrinstarKraid    = "Kraid's Lair"
	UpperNorfairWest = "Upper Norfair West"
	UpperNorfairEast = "Upper Norfair East"
	Crocomire        = "Upper Norfair Crocomire"
	LowerNorfairWest = "Lower Norfair West"
	LowerNorfairEast = "Lower Norfair East"
	WreckedShip      = "Wrecked Ship"
	MaridiaOuter     = "Outer Maridia"
	MaridiaInner     = "Inner Maridia"
	Tourian          = "Tourian"
)

type definer struct {
	b   *world.Builder
	l   *logic.Logic
	cfg *settings.Config
}

// Define adds every Super Metroid region to b.
func Define(b *world.Builder) {
	d := &definer{b: b, l: b.Logic(), cfg: b.Config()}
	d.crateria()
	d.brinstar()
	d.norfair()
	d.lowerNorfair()
	d.wreckedShip()
	d.maridia()
	d.tourian()
}

func (d *definer) crateria() {
	l := d.l

	west := d.b.Region(CrateriaWest, "Crateria", items.Metroid).Dungeon(items.Crateria).Weight(-1)
	west.Entry(func(p progression.Progression, _ bool) bool {
		return l.CanDestroyBombWalls(p) || p.SpeedBooster()
	})
	gauntlet := func(p progression.Progression) bool {
		return l.Card(p, items.CardCrateriaL1) && p.Morph() &&
			(l.CanFly(p) || p.SpeedBooster()) &&
			(l.CanIbj(p) || l.CanUsePowerBombs(p) && p.Has(items.PowerBomb, 2) || p.ScrewAttack())
	}
	west.Location("Energy Tank, Terminator", items.ETank, nil)
	west.Location("Energy Tank, Gauntlet", items.ETank, func(p progression.Progression) bool {
		return gauntlet(p) && l.HasEnergyReserves(p, 1)
	})
	west.Location("Missile (Crateria gauntlet right)", items.Missile, func(p progression.Progression) bool {
		return gauntlet(p) && l.CanPassBombPassages(p)
	})
	west.Location("Missile (Crateria gauntlet left)", items.Missile, func(p progression.Progression) bool {
		return gauntlet(p) && l.CanPassBombPassages(p)
	})

	central := d.b.Region(CrateriaCentral, "Crateria", items.Metroid).Dungeon(items.Crateria)
	central.Location("Power Bomb (Crateria surface)", items.PowerBomb, func(p progression.Progression) bool {
		return l.CardOr(p, items.CardCrateriaL1, l.CanUsePowerBombs(p)) && (p.SpeedBooster() || l.CanFly(p))
	})
	central.Location("Missile (Crateria middle)", items.Missile, l.CanPassBombPassages)
	central.Location("Missile (Crateria bottom)", items.Missile, l.CanDestroyBombWalls)
	central.Location("Super Missile (Crateria)", items.Super, func(p progression.Progression) bool {
		return l.CanUsePowerBombs(p) && l.HasEnergyReserves(p, 2) && p.SpeedBooster()
	})
	central.Location("Bombs", items.Bombs, func(p progression.Progression) bool {
		return l.CardOr(p, items.CardCrateriaBoss, l.CanOpenRedDoors(p)) && p.Morph()
	})

	east := d.b.Region(CrateriaEast, "Crateria", items.Metroid).Dungeon(items.Crateria)
	east.Entry(func(p progression.Progression, requireRewards bool) bool {
		moat := l.CardOr(p, items.CardCrateriaL2, l.CanUsePowerBombs(p))
		return moat && p.Super() ||
			moat && l.CanAccessNorfairUpperPortal(p) && (p.Ice() || p.HiJump() || p.SpaceJump()) ||
			l.CanAccessMaridiaPortal(p, requireRewards) && p.Super() &&
				(p.Gravity() && (p.HiJump() || p.SpaceJump() || p.SpeedBooster()))
	})
	ship := east.Ref(WreckedShip)
	shipPowered := func(p progression.Progression) bool {
		return ship.CanBeatBoss(p)
	}
	east.Location("Missile (outside Wrecked Ship bottom)", items.Missile, nil)
	east.Location("Missile (outside Wrecked Ship top)", items.Missile, shipPowered)
	east.Location("Missile (outside Wrecked Ship middle)", items.Missile, shipPowered)
	east.Location("Missile (Crateria moat)", items.Missile, nil)
}

func (d *definer) brinstar() {
	l, cfg := d.l, d.cfg

	blue := d.b.Region(BrinstarBlue, "Brinstar", items.Metroid).Dungeon(items.Brinstar)
	blueTop := func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL1) && l.CanUsePowerBombs(p) &&
			(!cfg.Logic.EasyBlueBrinstarTop || p.Gravity() || p.SpaceJump())
	}
	blue.Location("Morphing Ball", items.Morph, nil)
	blue.Location("Power Bomb (blue Brinstar)", items.PowerBomb, l.CanUsePowerBombs)
	blue.Location("Missile (blue Brinstar middle)", items.Missile, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL1) && p.Morph()
	})
	blue.Location("Energy Tank, Brinstar Ceiling", items.ETank, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL1) && (l.CanFly(p) || p.HiJump() || p.SpeedBooster() || p.Ice())
	})
	blue.Location("Missile (blue Brinstar bottom)", items.Missile, func(p progression.Progression) bool {
		return p.Morph()
	})
	blue.Location("Missile (blue Brinstar top)", items.Missile, blueTop)
	blue.Location("Missile (blue Brinstar behind missile)", items.Missile, blueTop)

	green := d.b.Region(BrinstarGreen, "Brinstar", items.Metroid).Dungeon(items.Brinstar)
	green.Entry(func(p progression.Progression, _ bool) bool {
		return l.CanDestroyBombWalls(p) || p.SpeedBooster()
	})
	etecoons := func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL2) && l.CanUsePowerBombs(p)
	}
	fastTop := func(p progression.Progression) bool {
		return l.CanOpenRedDoors(p) && l.CanMoveAtHighSpeeds(p)
	}
	green.Location("Power Bomb (green Brinstar bottom)", items.PowerBomb, etecoons)
	green.Location("Missile (green Brinstar below super missile)", items.Missile, func(p progression.Progression) bool {
		return l.CanPassBombPassages(p) && l.CanOpenRedDoors(p)
	})
	green.Location("Super Missile (green Brinstar top)", items.Super, fastTop)
	green.Location("Reserve Tank, Brinstar", items.ReserveTank, fastTop)
	green.Location("Missile (green Brinstar behind missile)", items.Missile, func(p progression.Progression) bool {
		return fastTop(p) && p.Morph()
	})
	green.Location("Missile (green Brinstar behind reserve tank)", items.Missile, func(p progression.Progression) bool {
		return fastTop(p) && p.Morph()
	})
	green.Location("Energy Tank, Etecoons", items.ETank, etecoons)
	green.Location("Super Missile (green Brinstar bottom)", items.Super, func(p progression.Progression) bool {
		return etecoons(p) && p.Super()
	})

	pink := d.b.Region(BrinstarPink, "Brinstar", items.Metroid).Dungeon(items.Brinstar)
	pink.Entry(func(p progression.Progression, _ bool) bool {
		return l.Card(p, items.CardBrinstarL1) &&
			(l.CanOpenRedDoors(p) && (l.CanDestroyBombWalls(p) || p.SpeedBooster()) || l.CanUsePowerBombs(p)) ||
			l.CanAccessNorfairUpperPortal(p) && p.Morph() && p.Wave() && (p.Ice() || p.HiJump() || p.SpaceJump())
	})
	pink.Location("Super Missile (pink Brinstar)", items.Super, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarBoss) && l.CanPassBombPassages(p) && p.Super()
	})
	pink.Location("Missile (pink Brinstar top)", items.Missile, nil)
	pink.Location("Missile (pink Brinstar bottom)", items.Missile, nil)
	pink.Location("Charge Beam", items.Charge, l.CanPassBombPassages)
	pink.Location("Power Bomb (pink Brinstar)", items.PowerBomb, func(p progression.Progression) bool {
		return l.CanUsePowerBombs(p) && p.Super()
	})
	pink.Location("Missile (green Brinstar pipe)", items.Missile, func(p progression.Progression) bool {
		return p.Morph() && (p.PowerBomb() || p.Super() || l.CanAccessNorfairUpperPortal(p))
	})
	pink.Location("Energy Tank, Waterway", items.ETank, func(p progression.Progression) bool {
		return l.CanUsePowerBombs(p) && l.CanOpenRedDoors(p) && p.SpeedBooster() &&
			(!cfg.Logic.WaterwayNeedsGravitySuit || p.Gravity())
	})
	pink.Location("Energy Tank, Brinstar Gate", items.ETank, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL2) && l.CanUsePowerBombs(p) && p.Wave() && l.HasEnergyReserves(p, 1)
	})

	red := d.b.Region(BrinstarRed, "Brinstar", items.Metroid).Dungeon(items.Brinstar)
	red.Entry(func(p progression.Progression, _ bool) bool {
		return p.Super() && l.CanUsePowerBombs(p) && (l.CanDestroyBombWalls(p) || p.SpeedBooster()) ||
			l.CanAccessNorfairUpperPortal(p) && (p.Ice() || p.HiJump() || p.SpaceJump())
	})
	red.Location("X-Ray Scope", items.XRay, func(p progression.Progression) bool {
		return l.CanUsePowerBombs(p) && l.CanOpenRedDoors(p) && (p.Grapple() || p.SpaceJump())
	})
	red.Location("Power Bomb (red Brinstar sidehopper room)", items.PowerBomb, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL2) && l.CanUsePowerBombs(p) && p.Super()
	})
	red.Location("Power Bomb (red Brinstar spike room)", items.PowerBomb, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL2) && (l.CanUsePowerBombs(p) || p.Ice()) && p.Super()
	})
	red.Location("Missile (red Brinstar spike room)", items.Missile, func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarL2) && l.CanUsePowerBombs(p) && p.Super()
	})
	red.Location("Spazer", items.Spazer, func(p progression.Progression) bool {
		return l.CanPassBombPassages(p) && p.Super()
	})

	kraid := d.b.Region(BrinstarKraid, "Brinstar", items.Metroid).Dungeon(items.Brinstar)
	kraid.Entry(func(p progression.Progression, _ bool) bool {
		return l.Card(p, items.CardBrinstarL1) && p.Super() && l.CanPassBombPassages(p)
	})
	beatKraid := func(p progression.Progression) bool {
		return l.Card(p, items.CardBrinstarBoss)
	}
	kraid.Location("Energy Tank, Kraid", items.ETank, beatKraid)
	kraid.Location("Missile (Kraid)", items.Missile, l.CanUsePowerBombs)
	kraid.Location("Varia Suit", items.Varia, beatKraid)
	kraid.Boss(items.Kraid, beatKraid, nil)
}

func (d *definer) norfair() {
	l := d.l

	west := d.b.Region(UpperNorfairWest, "Norfair", items.Metroid).Dungeon(items.Norfair)
	west.Entry(func(p progression.Progression, _ bool) bool {
		return (l.CanDestroyBombWalls(p) || p.SpeedBooster()) && p.Super() && p.Morph() ||
			l.CanAccessNorfairUpperPortal(p)
	})
	iceGate := func(p progression.Progression) bool {
		return l.CardOr(p, items.CardNorfairL1, p.Super())
	}
	west.Location("Ice Beam", items.Ice, func(p progression.Progression) bool {
		return iceGate(p) && l.CanPassBombPassages(p) && p.Varia() && l.CanMoveAtHighSpeeds(p)
	})
	west.Location("Missile (below Ice Beam)", items.Missile, func(p progression.Progression) bool {
		return iceGate(p) && l.CanUsePowerBombs(p) && p.Varia()
	})
	west.Location("Hi-Jump Boots", items.HiJump, func(p progression.Progression) bool {
		return l.CanOpenRedDoors(p) && l.CanPassBombPassages(p)
	})
	west.Location("Missile (Hi-Jump Boots)", items.Missile, func(p progression.Progression) bool {
		return l.CanOpenRedDoors(p) && p.Morph()
	})
	west.Location("Energy Tank (Hi-Jump Boots)", items.ETank, l.CanOpenRedDoors)

	east := d.b.Region(UpperNorfairEast, "Norfair", items.Metroid).Dungeon(items.Norfair)
	westRef := east.DependsOn(UpperNorfairWest)
	east.Entry(func(p progression.Progression, requireRewards bool) bool {
		return westRef.CanEnter(p, requireRewards) && p.Varia() &&
			l.CardOr(p, items.CardNorfairL2, p.Super()) &&
			(l.CanFly(p) || p.HiJump() || l.CanWallJump(settings.WallJumpHard) || p.SpeedBooster() ||
				p.Ice() && l.CanWallJump(settings.WallJumpMedium))
	})
	reserveRoom := func(p progression.Progression) bool {
		return l.Card(p, items.CardNorfairL2) && p.Morph() &&
			(l.CanFly(p) || p.Grapple() && (p.SpeedBooster() || l.CanPassBombPassages(p)) || p.HiJump() || p.Ice())
	}
	east.Location("Missile (lava room)", items.Missile, func(p progression.Progression) bool {
		return p.Morph()
	})
	east.Location("Reserve Tank, Norfair", items.ReserveTank, reserveRoom)
	east.Location("Missile (Norfair Reserve Tank)", items.Missile, reserveRoom)
	east.Location("Missile (bubble Norfair green door)", items.Missile, func(p progression.Progression) bool {
		return l.Card(p, items.CardNorfairL2) &&
			(l.CanFly(p) || p.Grapple() && p.Morph() && (p.SpeedBooster() || l.CanPassBombPassages(p)) || p.HiJump() || p.Ice())
	})
	east.Location("Missile (bubble Norfair)", items.Missile, nil)
	east.Location("Missile (Speed Booster)", items.Missile, func(p progression.Progression) bool {
		return l.Card(p, items.CardNorfairL2)
	})
	east.Location("Speed Booster", items.SpeedBooster, func(p progression.Progression) bool {
		return l.Card(p, items.CardNorfairL2)
	})
	east.Location("Missile (Wave Beam)", items.Missile, func(p progression.Progression) bool {
		return l.Card(p, items.CardNorfairL2)
	})
	east.Location("Wave Beam", items.Wave, func(p progression.Progression) bool {
		return p.Morph() && l.Card(p, items.CardNorfairL2) &&
			(p.Grapple() || p.SpaceJump() || l.CanWallJump(settings.WallJumpMedium))
	})

	croc := d.b.Region(Crocomire, "Norfair", items.Metroid).Dungeon(items.Norfair)
	eastRef := croc.DependsOn(UpperNorfairEast)
	croc.Entry(func(p progression.Progression, requireRewards bool) bool {
		return eastRef.CanEnter(p, requireRewards) && l.CardOr(p, items.CardNorfairBoss, p.Super()) &&
			l.CanPassBombPassages(p) && (p.SpeedBooster() || l.CanUsePowerBombs(p)) ||
			l.CanAccessNorfairLowerPortal(p) && p.Varia() && p.Super() && l.CanUsePowerBombs(p) && p.SpaceJump()
	})
	grapple := func(p progression.Progression) bool {
		return p.Morph() && (p.SpeedBooster() || l.CanFly(p) || p.HiJump() && l.CanWallJump(settings.WallJumpHard))
	}
	croc.Location("Energy Tank, Crocomire", items.ETank, func(p progression.Progression) bool {
		return l.HasEnergyReserves(p, 1) || p.SpaceJump() || p.Grapple()
	})
	croc.Location("Missile (above Crocomire)", items.Missile, func(p progression.Progression) bool {
		return l.CanFly(p) || p.Grapple() || p.HiJump() && p.SpeedBooster()
	})
	croc.Location("Power Bomb (Crocomire)", items.PowerBomb, func(p progression.Progression) bool {
		return l.CanFly(p) || p.HiJump() || p.Grapple()
	})
	croc.Location("Missile (below Crocomire)", items.Missile, func(p progression.Progression) bool {
		return p.Morph()
	})
	croc.Location("Missile (Grappling Beam)", items.Missile, grapple)
	croc.Location("Grappling Beam", items.Grapple, grapple)
	croc.Boss(items.Crocomire, func(p progression.Progression) bool {
		return p.Missile() || p.Super() || p.Charge()
	}, nil)
}

func (d *definer) lowerNorfair() {
	l := d.l

	west := d.b.Region(LowerNorfairWest, "Lower Norfair", items.Metroid).Dungeon(items.LowerNorfair).Weight(1)
	upperEast := west.DependsOn(UpperNorfairEast)
	west.Entry(func(p progression.Progression, requireRewards bool) bool {
		if !p.Varia() {
			return false
		}
		// down the elevator from Upper Norfair
		if upperEast.CanEnter(p, requireRewards) && l.CanUsePowerBombs(p) && p.SpaceJump() && p.Gravity() {
			return true
		}
		// through the portal below the Dark World mountain
		return l.CanAccessNorfairLowerPortal(p) && l.CanDestroyBombWalls(p) && p.Super() && l.CanUsePowerBombs(p) &&
			(l.CanWallJump(settings.WallJumpInsane) || p.HiJump() && l.CanWallJump(settings.WallJumpHard) || l.CanFly(p))
	})
	west.Location("Missile (Gold Torizo)", items.Missile, func(p progression.Progression) bool {
		return l.CanUsePowerBombs(p) && p.SpaceJump() && p.Super()
	})
	west.Location("Super Missile (Gold Torizo)", items.Super, l.CanDestroyBombWalls)
	west.Location("Missile (Mickey Mouse room)", items.Missile, func(p progression.Progression) bool {
		return p.Morph() && l.CanDestroyBombWalls(p)
	})
	west.Location("Screw Attack", items.ScrewAttack, func(p progression.Progression) bool {
		return l.CanDestroyBombWalls(p) && (p.SpaceJump() && l.CanUsePowerBombs(p) || l.CanAccessNorfairLowerPortal(p))
	})

	east := d.b.Region(LowerNorfairEast, "Lower Norfair", items.Metroid).Dungeon(items.LowerNorfair).Weight(2)
	westRef := east.DependsOn(LowerNorfairWest)
	east.Entry(func(p progression.Progression, requireRewards bool) bool {
		return westRef.CanEnter(p, requireRewards) && l.Card(p, items.CardLowerNorfairL1) && l.CanUsePowerBombs(p) &&
			(l.CanFly(p) || p.HiJump() && l.CanWallJump(settings.WallJumpHard) ||
				l.CanWallJump(settings.WallJumpInsane) || p.SpeedBooster())
	})
	beatRidley := func(p progression.Progression) bool {
		return l.Card(p, items.CardLowerNorfairBoss) && l.CanUsePowerBombs(p) && p.Super() && l.HasEnergyReserves(p, 3)
	}
	east.Location("Missile (lower Norfair above fire flea room)", items.Missile, nil)
	east.Location("Power Bomb (lower Norfair above fire flea room)", items.PowerBomb, nil)
	east.Location("Power Bomb (Power Bombs of shame)", items.PowerBomb, l.CanUsePowerBombs)
	east.Location("Missile (lower Norfair near Wave Beam)", items.Missile, func(p progression.Progression) bool {
		return p.Morph()
	})
	east.Location("Energy Tank, Ridley", items.ETank, beatRidley)
	east.Location("Energy Tank, Firefleas", items.ETank, nil)
	east.Boss(items.Ridley, beatRidley, nil)
}

func (d *definer) wreckedShip() {
	l := d.l

	ship := d.b.Region(WreckedShip, "Wrecked Ship", items.Metroid).Dungeon(items.WreckedShip)
	moat := ship.DependsOn(CrateriaEast)
	ship.Entry(func(p progression.Progression, requireRewards bool) bool {
		return moat.CanEnter(p, requireRewards) && p.Super() &&
			(p.Grapple() || p.SpaceJump() || p.SpeedBooster() || p.Morph() && p.Gravity() ||
				l.CanWallJump(settings.WallJumpInsane))
	})
	beatPhantoon := func(p progression.Progression) bool {
		return l.Card(p, items.CardWreckedShipBoss) && l.CanPassBombPassages(p)
	}
	powered := func(p progression.Progression) bool {
		return beatPhantoon(p) && l.Card(p, items.CardWreckedShipL1)
	}
	ship.Location("Missile (Wrecked Ship middle)", items.Missile, l.CanPassBombPassages)
	ship.Location("Reserve Tank, Wrecked Ship", items.ReserveTank, func(p progression.Progression) bool {
		return powered(p) && p.SpeedBooster() && l.CanUsePowerBombs(p) &&
			(p.Grapple() || p.SpaceJump() || p.Varia() && l.HasEnergyReserves(p, 2) || l.HasEnergyReserves(p, 3))
	})
	ship.Location("Missile (Gravity Suit)", items.Missile, func(p progression.Progression) bool {
		return powered(p) && (p.Varia() || l.HasEnergyReserves(p, 1))
	})
	ship.Location("Missile (Wrecked Ship top)", items.Missile, powered)
	ship.Location("Energy Tank, Wrecked Ship", items.ETank, func(p progression.Progression) bool {
		return powered(p) && (p.HiJump() || p.SpaceJump() || p.SpeedBooster() || p.Gravity())
	})
	ship.Location("Super Missile (Wrecked Ship left)", items.Super, powered)
	ship.Location("Right Super, Wrecked Ship", items.Super, powered)
	ship.Location("Gravity Suit", items.Gravity, func(p progression.Progression) bool {
		return powered(p) && (p.Varia() || l.HasEnergyReserves(p, 1))
	})
	ship.Boss(items.Phantoon, beatPhantoon, nil)
}

func (d *definer) maridia() {
	l, cfg := d.l, d.cfg

	outer := d.b.Region(MaridiaOuter, "Maridia", items.Metroid).Dungeon(items.Maridia)
	redRef := outer.DependsOn(BrinstarRed)
	outer.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.Gravity() && (redRef.CanEnter(p, requireRewards) && l.CanUsePowerBombs(p) && p.Super() ||
			l.CanAccessMaridiaPortal(p, requireRewards))
	})
	outer.Location("Missile (green Maridia shinespark)", items.Missile, func(p progression.Progression) bool {
		return p.SpeedBooster()
	})
	outer.Location("Super Missile (green Maridia)", items.Super, nil)
	outer.Location("Energy Tank, Mama turtle", items.ETank, func(p progression.Progression) bool {
		return l.CanOpenRedDoors(p) && (l.CanFly(p) || p.SpeedBooster() || p.Grapple())
	})
	outer.Location("Missile (green Maridia tatori)", items.Missile, l.CanOpenRedDoors)

	inner := d.b.Region(MaridiaInner, "Maridia", items.Metroid).Dungeon(items.Maridia).Weight(1)
	outerRef := inner.DependsOn(MaridiaOuter)
	inner.Entry(func(p progression.Progression, requireRewards bool) bool {
		return outerRef.CanEnter(p, requireRewards) && p.Super() && l.Card(p, items.CardMaridiaL1) &&
			(l.CanFly(p) || p.SpeedBooster() || p.Grapple() || p.HiJump() || l.CanWallJump(settings.WallJumpHard))
	})
	aqueduct := func(p progression.Progression) bool {
		return p.Grapple() || p.SpeedBooster() || l.CanFly(p) ||
			p.HiJump() && (!cfg.Logic.LaunchPadRequiresIceBeam || p.Ice())
	}
	leftSandPit := func(p progression.Progression) bool {
		return aqueduct(p) && l.CanPassBombPassages(p) &&
			(!cfg.Logic.LeftSandPitRequiresSpringBall || p.SpringBall() || p.HiJump() && p.SpaceJump())
	}
	draygonArea := func(p progression.Progression) bool {
		return l.Card(p, items.CardMaridiaL2) && aqueduct(p) &&
			(p.SpeedBooster() || p.Morph() && (p.Grapple() || l.CanFly(p)))
	}
	beatDraygon := func(p progression.Progression) bool {
		return draygonArea(p) && l.Card(p, items.CardMaridiaBoss) && (p.Grapple() || p.Charge() || p.Super())
	}
	inner.Location("Super Missile (yellow Maridia)", items.Super, l.CanPassBombPassages)
	inner.Location("Missile (yellow Maridia super missile)", items.Missile, l.CanPassBombPassages)
	inner.Location("Missile (yellow Maridia false wall)", items.Missile, l.CanPassBombPassages)
	inner.Location("Plasma Beam", items.Plasma, func(p progression.Progression) bool {
		return beatDraygon(p) && (p.ScrewAttack() || p.Charge() && l.HasEnergyReserves(p, 3)) &&
			(p.HiJump() || l.CanFly(p) || p.SpeedBooster())
	})
	inner.Location("Missile (left Maridia sand pit room)", items.Missile, leftSandPit)
	inner.Location("Reserve Tank, Maridia", items.ReserveTank, leftSandPit)
	inner.Location("Missile (right Maridia sand pit room)", items.Missile, aqueduct)
	inner.Location("Power Bomb (right Maridia sand pit room)", items.PowerBomb, aqueduct)
	inner.Location("Missile (pink Maridia)", items.Missile, func(p progression.Progression) bool {
		return aqueduct(p) && p.SpeedBooster()
	})
	inner.Location("Super Missile (pink Maridia)", items.Super, func(p progression.Progression) bool {
		return aqueduct(p) && p.SpeedBooster()
	})
	inner.Location("Spring Ball", items.SpringBall, func(p progression.Progression) bool {
		return p.Grapple() && l.CanUsePowerBombs(p) && (p.SpaceJump() || p.HiJump())
	})
	inner.Location("Missile (Draygon)", items.Missile, draygonArea)
	inner.Location("Energy Tank, Botwoon", items.ETank, draygonArea)
	inner.Location("Space Jump", items.SpaceJump, beatDraygon)
	inner.Boss(items.Draygon, beatDraygon, nil)
}

func (d *definer) tourian() {
	l, cfg := d.l, d.cfg

	tourian := d.b.Region(Tourian, "Tourian", items.Metroid).Weight(3)
	tourian.Entry(func(p progression.Progression, requireRewards bool) bool {
		return (!requireRewards || p.CountDefeated(items.GoldenFour...) >= cfg.TourianBossCount) &&
			p.Super() && l.CanUsePowerBombs(p) && p.Ice()
	})
	tourian.Boss(items.MotherBrain, func(p progression.Progression) bool {
		return (p.Charge() || p.Super()) && l.HasEnergyReserves(p, 3)
	}, nil)
}
