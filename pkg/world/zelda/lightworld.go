package zelda

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

func (d *definer) deathMountain() {
	l := d.l

	west := d.b.Region(LightWorldDeathMountainWest, "Death Mountain", items.Zelda)
	west.Entry(func(p progression.Progression, _ bool) bool {
		return p.Flute() || l.CanLiftLight(p) && p.Lamp() || l.CanAccessDeathMountainPortal(p)
	})
	west.Location("Ether Tablet", items.Ether, func(p progression.Progression) bool {
		return p.Book() && l.HasMasterSword(p) && (p.Mirror() || p.Hammer() && p.Hookshot())
	})
	west.Location("Spectacle Rock", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror()
	})
	west.Location("Spectacle Rock Cave", items.HeartPiece, nil)
	west.Location("Old Man", items.Mirror, func(p progression.Progression) bool {
		return p.Lamp()
	})

	east := d.b.Region(LightWorldDeathMountainEast, "Death Mountain", items.Zelda)
	westRef := east.DependsOn(LightWorldDeathMountainWest)
	east.Entry(func(p progression.Progression, requireRewards bool) bool {
		return westRef.CanEnter(p, requireRewards) && (p.Hammer() && p.Mirror() || p.Hookshot())
	})
	turtleRock := east.Ref(TurtleRock)
	east.Location("Floating Island", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror() && p.MoonPearl() && l.CanLiftHeavy(p)
	})
	east.Location("Spiral Cave", items.Nothing, nil)
	paradox := east.Room("Paradox Cave", nil)
	paradox.Location("Paradox Cave Upper - Left", items.Nothing, nil)
	paradox.Location("Paradox Cave Upper - Right", items.Nothing, nil)
	paradox.Location("Paradox Cave Lower - Far Left", items.Nothing, nil)
	paradox.Location("Paradox Cave Lower - Left", items.Nothing, nil)
	paradox.Location("Paradox Cave Lower - Middle", items.Nothing, nil)
	paradox.Location("Paradox Cave Lower - Right", items.Nothing, nil)
	paradox.Location("Paradox Cave Lower - Far Right", items.Nothing, nil)
	east.Location("Mimic Cave", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror() && p.Has(items.KeyTR, 2) && turtleRock.CanEnter(p, true)
	})
}

func (d *definer) lightWorld() {
	l, cfg := d.l, d.cfg

	nw := d.b.Region(LightWorldNorthWest, "Light World", items.Zelda)
	darkNW := nw.Ref(DarkWorldNorthWest)
	nw.Location("Master Sword Pedestal", items.ProgressiveSword, func(p progression.Progression) bool {
		return l.HasPendants(p, 3)
	})
	nw.Location("Mushroom", items.Mushroom, nil)
	nw.Location("Lost Woods Hideout", items.HeartPiece, nil)
	nw.Location("Lumberjack Tree", items.HeartPiece, func(p progression.Progression) bool {
		return p.HasReward(items.RewardAgahnim) && p.Boots()
	})
	nw.Location("Pegasus Rocks", items.HeartPiece, func(p progression.Progression) bool {
		return p.Boots()
	})
	nw.Location("Graveyard Ledge", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror() && p.MoonPearl() && darkNW.CanEnter(p, true)
	})
	nw.Location("King's Tomb", items.Cape, func(p progression.Progression) bool {
		return p.Boots() && (l.CanLiftHeavy(p) || p.Mirror() && p.MoonPearl() && darkNW.CanEnter(p, true))
	})
	well := nw.Room("Kakariko Well", nil)
	well.Location("Kakariko Well - Top", items.HeartPiece, nil)
	well.Location("Kakariko Well - Left", items.Nothing, nil)
	well.Location("Kakariko Well - Middle", items.Nothing, nil)
	well.Location("Kakariko Well - Right", items.Nothing, nil)
	well.Location("Kakariko Well - Bottom", items.Nothing, nil)
	blind := nw.Room("Blind's Hideout", nil)
	blind.Location("Blind's Hideout - Top", items.HeartPiece, nil)
	blind.Location("Blind's Hideout - Left", items.Nothing, nil)
	blind.Location("Blind's Hideout - Right", items.Nothing, nil)
	blind.Location("Blind's Hideout - Far Left", items.Nothing, nil)
	blind.Location("Blind's Hideout - Far Right", items.Nothing, nil)
	nw.Location("Bottle Merchant", items.Bottle, nil)
	nw.Location("Chicken House", items.Nothing, nil)
	nw.Location("Sick Kid", items.Bugnet, func(p progression.Progression) bool {
		return p.Bottle()
	})
	nw.Location("Kakariko Tavern", items.Bottle, nil)
	nw.Location("Magic Bat", items.HalfMagic, func(p progression.Progression) bool {
		return p.Powder() && (p.Hammer() || p.MoonPearl() && p.Mirror() && l.CanLiftHeavy(p))
	})

	ne := d.b.Region(LightWorldNorthEast, "Light World", items.Zelda)
	ne.Location("King Zora", items.Flippers, func(p progression.Progression) bool {
		return l.CanLiftLight(p) || p.Flippers()
	})
	ne.Location("Zora's Ledge", items.HeartPiece, func(p progression.Progression) bool {
		return p.Flippers()
	})
	ne.Location("Waterfall Fairy - Left", items.Nothing, func(p progression.Progression) bool {
		return p.Flippers()
	})
	ne.Location("Waterfall Fairy - Right", items.Nothing, func(p progression.Progression) bool {
		return p.Flippers()
	})
	ne.Location("Potion Shop", items.Powder, func(p progression.Progression) bool {
		return p.Mushroom()
	})
	hut := ne.Room("Sahasrahla's Hut", nil)
	hut.Location("Sahasrahla's Hut - Left", items.Nothing, nil)
	hut.Location("Sahasrahla's Hut - Middle", items.Nothing, nil)
	hut.Location("Sahasrahla's Hut - Right", items.Nothing, nil)
	ne.Location("Sahasrahla", items.Boots, func(p progression.Progression) bool {
		return p.HasReward(items.PendantGreen)
	})

	south := d.b.Region(LightWorldSouth, "Light World", items.Zelda)
	darkSouth := south.Ref(DarkWorldSouth)
	darkNE := south.Ref(DarkWorldNorthEast)
	desert := south.Ref(DesertPalace)
	mire := south.Ref(DarkWorldMire)
	swim := func(p progression.Progression) bool {
		return p.Flippers() || cfg.Logic.LightWorldSouthFakeFlippers
	}
	south.Location("Maze Race", items.HeartPiece, nil)
	south.Location("Library", items.Book, func(p progression.Progression) bool {
		return p.Boots()
	})
	south.Location("Flute Spot", items.Flute, func(p progression.Progression) bool {
		return p.Shovel()
	})
	south.Location("South of Grove", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror() && darkSouth.CanEnter(p, true)
	})
	south.Location("Link's Uncle", items.ProgressiveSword, nil)
	south.Location("Link's House", items.Lamp, nil)
	south.Location("Aginah's Cave", items.Nothing, nil)
	moldorm := south.Room("Mini Moldorm Cave", nil)
	moldorm.Location("Mini Moldorm Cave - Far Left", items.Nothing, nil)
	moldorm.Location("Mini Moldorm Cave - Left", items.Nothing, nil)
	moldorm.Location("Mini Moldorm Cave - NPC", items.Nothing, nil)
	moldorm.Location("Mini Moldorm Cave - Right", items.Nothing, nil)
	moldorm.Location("Mini Moldorm Cave - Far Right", items.Nothing, nil)
	south.Location("Desert Ledge", items.HeartPiece, func(p progression.Progression) bool {
		return desert.CanEnter(p, true)
	})
	south.Location("Checkerboard Cave", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror() && mire.CanEnter(p, true)
	})
	south.Location("Bombos Tablet", items.Bombos, func(p progression.Progression) bool {
		return p.Book() && l.HasMasterSword(p) && p.Mirror() && darkSouth.CanEnter(p, true)
	})
	south.Location("Floodgate Chest", items.Nothing, nil)
	south.Location("Sunken Treasure", items.HeartPiece, nil)
	south.Location("Lake Hylia Island", items.HeartPiece, func(p progression.Progression) bool {
		return swim(p) && p.MoonPearl() && p.Mirror() &&
			(darkSouth.CanEnter(p, true) || darkNE.CanEnter(p, true))
	})
	south.Location("Hobo", items.Bottle, swim)
	south.Location("Ice Rod Cave", items.IceRod, nil)
	south.Location("Cave 45", items.HeartPiece, func(p progression.Progression) bool {
		return p.Mirror() && darkSouth.CanEnter(p, true)
	})
}

func (d *definer) castle() {
	l := d.l

	hc := d.b.Region(HyruleCastle, "Light World", items.Zelda).Dungeon(items.HyruleCastle)
	secretRoom := func(p progression.Progression) bool {
		return l.CanLiftLight(p) || p.Lamp() && p.Has(items.KeyHC, 1)
	}
	cell := func(p progression.Progression) bool {
		return p.Has(items.KeyHC, 1)
	}
	hc.Location("Sanctuary", items.HeartContainer, nil)
	hc.Location("Sewers - Secret Room - Left", items.Nothing, secretRoom)
	hc.Location("Sewers - Secret Room - Middle", items.Nothing, secretRoom)
	hc.Location("Sewers - Secret Room - Right", items.Nothing, secretRoom)
	hc.Location("Sewers - Dark Cross", items.Nothing, func(p progression.Progression) bool {
		return p.Lamp()
	})
	hc.Location("Hyrule Castle - Map Chest", items.Nothing, nil)
	hc.Location("Hyrule Castle - Boomerang Chest", items.BlueBoomerang, cell)
	hc.Location("Hyrule Castle - Zelda's Cell", items.Nothing, cell)
	hc.Location("Secret Passage", items.Nothing, nil)

	ct := d.b.Region(CastleTower, "Light World", items.Zelda).Dungeon(items.CastleTower)
	ct.Entry(func(p progression.Progression, _ bool) bool {
		return l.CanKillManyEnemies(p) && (p.Cape() || l.HasMasterSword(p))
	})
	ct.Location("Castle Tower - Foyer", items.Nothing, nil)
	ct.Location("Castle Tower - Dark Maze", items.Nothing, func(p progression.Progression) bool {
		return l.CanNavigateDarkRooms(p) && p.Has(items.KeyCT, 1)
	})
	ct.Boss(items.BossAgahnim, func(p progression.Progression) bool {
		return l.CanNavigateDarkRooms(p) && p.Has(items.KeyCT, 2) && l.CanBeatAgahnim(p)
	}, nil).FixedReward(items.RewardAgahnim, nil)
}

func (d *definer) lightWorldDungeons() {
	l := d.l

	ep := d.b.Region(EasternPalace, "Light World", items.Zelda).Dungeon(items.EasternPalace)
	beatArmos := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyEP) && p.Bow() && p.Lamp()
	}
	ep.Location("Eastern Palace - Cannonball Chest", items.Nothing, nil)
	ep.Location("Eastern Palace - Map Chest", items.Nothing, nil)
	ep.Location("Eastern Palace - Compass Chest", items.Nothing, nil)
	ep.Location("Eastern Palace - Big Chest", items.Bow, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyEP)
	})
	ep.Location("Eastern Palace - Big Key Chest", items.BigKeyEP, func(p progression.Progression) bool {
		return p.Lamp()
	})
	ep.Location("Eastern Palace - Armos Knights", items.HeartContainer, beatArmos)
	ep.Boss(items.ArmosKnights, beatArmos, nil).Reward(items.PendantGreen, nil).Treasure(3)

	dp := d.b.Region(DesertPalace, "Light World", items.Zelda).Dungeon(items.DesertPalace)
	dp.Entry(func(p progression.Progression, _ bool) bool {
		return p.Book() || p.Mirror() && l.CanLiftHeavy(p) && p.Flute()
	})
	beatLanmolas := func(p progression.Progression) bool {
		return (l.CanLiftLight(p) || p.Mirror() && p.Flute() && l.CanLiftHeavy(p)) &&
			l.CanLightTorches(p) && p.Contains(items.BigKeyDP) && p.Has(items.KeyDP, 1) &&
			(p.Sword() || p.Hammer() || p.Bow() || p.FireRod() || p.IceRod() || p.Somaria() || p.Byrna())
	}
	dp.Location("Desert Palace - Big Chest", items.PowerBomb, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyDP)
	})
	dp.Location("Desert Palace - Torch", items.KeyDP, func(p progression.Progression) bool {
		return p.Boots()
	})
	dp.Location("Desert Palace - Map Chest", items.Nothing, nil)
	dp.Location("Desert Palace - Big Key Chest", items.BigKeyDP, func(p progression.Progression) bool {
		return p.Has(items.KeyDP, 1)
	})
	dp.Location("Desert Palace - Compass Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Has(items.KeyDP, 1)
	})
	dp.Location("Desert Palace - Lanmolas", items.HeartContainer, beatLanmolas)
	dp.Boss(items.Lanmolas, beatLanmolas, nil).Reward(items.PendantBlue, nil).Treasure(2)

	th := d.b.Region(TowerOfHera, "Death Mountain", items.Zelda).Dungeon(items.TowerOfHera)
	mountain := th.DependsOn(LightWorldDeathMountainWest)
	th.Entry(func(p progression.Progression, requireRewards bool) bool {
		return mountain.CanEnter(p, requireRewards) && (p.Mirror() || p.Hookshot() && p.Hammer())
	})
	beatMoldorm := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTH) && (p.Sword() || p.Hammer())
	}
	th.Location("Tower of Hera - Basement Cage", items.HeartPiece, nil)
	th.Location("Tower of Hera - Map Chest", items.Nothing, nil)
	th.Location("Tower of Hera - Big Key Chest", items.BigKeyTH, func(p progression.Progression) bool {
		return p.Has(items.KeyTH, 1) && l.CanLightTorches(p)
	})
	th.Location("Tower of Hera - Compass Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTH)
	})
	th.Location("Tower of Hera - Big Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTH)
	})
	th.Location("Tower of Hera - Moldorm", items.HeartContainer, beatMoldorm)
	th.Boss(items.Moldorm, beatMoldorm, nil).Reward(items.PendantRed, nil).Treasure(2)
}
