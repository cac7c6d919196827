package zelda

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

func (d *definer) palaceOfDarkness() {
	l := d.l

	pd := d.b.Region(PalaceOfDarkness, "Dark World", items.Zelda).Dungeon(items.PalaceOfDarkness)
	ne := pd.DependsOn(DarkWorldNorthEast)
	pd.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && ne.CanEnter(p, requireRewards)
	})
	bigKeyChest := pd.LocationRef("Palace of Darkness - Big Key Chest")
	hellway := pd.LocationRef("Palace of Darkness - Harmless Hellway")
	bridge := func(p progression.Progression) bool {
		return p.Has(items.KeyPD, 1) || p.Bow() && p.Hammer()
	}
	darkBasement := func(p progression.Progression) bool {
		return l.CanNavigateDarkRooms(p) && p.Has(items.KeyPD, 4)
	}
	darkMaze := func(p progression.Progression) bool {
		return l.CanNavigateDarkRooms(p) && p.Has(items.KeyPD, 5)
	}
	beatHelmasaur := func(p progression.Progression) bool {
		return l.CanNavigateDarkRooms(p) && p.Hammer() && p.Bow() &&
			p.Contains(items.BigKeyPD) && p.Has(items.KeyPD, 6)
	}

	pd.Location("Palace of Darkness - Shooter Room", items.KeyPD, nil)
	pd.Location("Palace of Darkness - Big Key Chest", items.BigKeyPD, func(p progression.Progression) bool {
		return p.Has(items.KeyPD, 6) || bigKeyChest.ItemIs(items.KeyPD) && p.Has(items.KeyPD, 1)
	})
	pd.Location("Palace of Darkness - Stalfos Basement", items.KeyPD, bridge)
	pd.Location("Palace of Darkness - The Arena - Bridge", items.KeyPD, bridge)
	pd.Location("Palace of Darkness - The Arena - Ledge", items.KeyPD, func(p progression.Progression) bool {
		return p.Bow()
	})
	pd.Location("Palace of Darkness - Map Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Bow()
	})
	pd.Location("Palace of Darkness - Compass Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Has(items.KeyPD, 3)
	})
	pd.Location("Palace of Darkness - Harmless Hellway", items.KeyPD, func(p progression.Progression) bool {
		return p.Has(items.KeyPD, 4) || hellway.ItemIs(items.KeyPD) && p.Has(items.KeyPD, 3)
	})
	pd.Location("Palace of Darkness - Dark Basement - Left", items.Nothing, darkBasement)
	pd.Location("Palace of Darkness - Dark Basement - Right", items.KeyPD, darkBasement)
	pd.Location("Palace of Darkness - Dark Maze - Top", items.Nothing, darkMaze)
	pd.Location("Palace of Darkness - Dark Maze - Bottom", items.KeyPD, darkMaze)
	pd.Location("Palace of Darkness - Big Chest", items.Hammer, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyPD) && darkMaze(p)
	})
	pd.Location("Palace of Darkness - Helmasaur King", items.HeartContainer, beatHelmasaur)
	pd.Boss(items.HelmasaurKing, beatHelmasaur, nil).Reward(items.CrystalBlue, nil).Treasure(5)
}

func (d *definer) swampPalace() {
	sp := d.b.Region(SwampPalace, "Dark World", items.Zelda).Dungeon(items.SwampPalace)
	south := sp.DependsOn(DarkWorldSouth)
	sp.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && p.Mirror() && p.Flippers() && south.CanEnter(p, requireRewards)
	})
	hammer := func(p progression.Progression) bool {
		return p.Has(items.KeySP, 1) && p.Hammer()
	}
	flooded := func(p progression.Progression) bool {
		return hammer(p) && p.Hookshot()
	}

	sp.Location("Swamp Palace - Entrance", items.KeySP, nil)
	sp.Location("Swamp Palace - Map Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Has(items.KeySP, 1)
	})
	sp.Location("Swamp Palace - Big Chest", items.Hookshot, func(p progression.Progression) bool {
		return hammer(p) && p.Contains(items.BigKeySP)
	})
	sp.Location("Swamp Palace - Compass Chest", items.Nothing, hammer)
	sp.Location("Swamp Palace - West Chest", items.Nothing, hammer)
	sp.Location("Swamp Palace - Big Key Chest", items.BigKeySP, hammer)
	sp.Location("Swamp Palace - Flooded Room - Left", items.Nothing, flooded)
	sp.Location("Swamp Palace - Flooded Room - Right", items.Nothing, flooded)
	sp.Location("Swamp Palace - Waterfall Room", items.Nothing, flooded)
	sp.Location("Swamp Palace - Arrghus", items.HeartContainer, flooded)
	sp.Boss(items.Arrghus, flooded, nil).Reward(items.CrystalBlue, nil).Treasure(6)
}

func (d *definer) skullWoodsAndThievesTown() {
	sw := d.b.Region(SkullWoods, "Dark World", items.Zelda).Dungeon(items.SkullWoods)
	nw := sw.DependsOn(DarkWorldNorthWest)
	sw.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && nw.CanEnter(p, requireRewards)
	})
	beatMothula := func(p progression.Progression) bool {
		return p.FireRod() && p.Sword() && p.Has(items.KeySW, 3)
	}
	sw.Location("Skull Woods - Pot Prison", items.KeySW, nil)
	sw.Location("Skull Woods - Compass Chest", items.Nothing, nil)
	sw.Location("Skull Woods - Big Chest", items.FireRod, func(p progression.Progression) bool {
		return p.Contains(items.BigKeySW)
	})
	sw.Location("Skull Woods - Map Chest", items.Nothing, nil)
	sw.Location("Skull Woods - Pinball Room", items.KeySW, nil)
	sw.Location("Skull Woods - Big Key Chest", items.BigKeySW, nil)
	sw.Location("Skull Woods - Bridge Room", items.KeySW, func(p progression.Progression) bool {
		return p.FireRod()
	})
	sw.Location("Skull Woods - Mothula", items.HeartContainer, beatMothula)
	sw.Boss(items.Mothula, beatMothula, nil).Reward(items.CrystalBlue, nil).Treasure(2)

	tt := d.b.Region(ThievesTown, "Dark World", items.Zelda).Dungeon(items.ThievesTown)
	village := tt.DependsOn(DarkWorldNorthWest)
	tt.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && village.CanEnter(p, requireRewards)
	})
	bigChest := tt.LocationRef("Thieves' Town - Big Chest")
	beatBlind := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTT) && p.Has(items.KeyTT, 1) &&
			(p.Sword() || p.Hammer() || p.Somaria() || p.Byrna())
	}
	tt.Location("Thieves' Town - Map Chest", items.Nothing, nil)
	tt.Location("Thieves' Town - Ambush Chest", items.Nothing, nil)
	tt.Location("Thieves' Town - Compass Chest", items.Nothing, nil)
	tt.Location("Thieves' Town - Big Key Chest", items.BigKeyTT, nil)
	tt.Location("Thieves' Town - Attic", items.Nothing, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTT) && p.Has(items.KeyTT, 1)
	})
	tt.Location("Thieves' Town - Blind's Cell", items.ProgressiveGlove, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTT)
	})
	tt.Location("Thieves' Town - Big Chest", items.Hammer, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTT) && p.Hammer() &&
			(p.Has(items.KeyTT, 1) || bigChest.ItemIs(items.KeyTT))
	})
	tt.Location("Thieves' Town - Blind", items.HeartContainer, beatBlind)
	tt.Boss(items.Blind, beatBlind, nil).Reward(items.CrystalBlue, nil).Treasure(4)
}

func (d *definer) icePalace() {
	l, cfg := d.l, d.cfg

	ip := d.b.Region(IcePalace, "Dark World", items.Zelda).Dungeon(items.IcePalace)
	ip.Entry(func(p progression.Progression, _ bool) bool {
		return p.MoonPearl() && p.Flippers() && l.CanLiftHeavy(p) && l.CanMeltFreezors(p)
	})
	spikes := func(p progression.Progression) bool {
		return p.Hookshot() || p.Has(items.KeyIP, 1)
	}
	hammerRoute := func(p progression.Progression) bool {
		return p.Hammer() && l.CanLiftLight(p) && spikes(p)
	}
	beatKholdstare := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyIP) && p.Hammer() && l.CanLiftLight(p) &&
			(p.Has(items.KeyIP, 2) || p.Somaria() && p.Has(items.KeyIP, 1)) &&
			(!cfg.Logic.KholdstareNeedsCaneOfSomaria || p.Somaria())
	}
	ip.Location("Ice Palace - Compass Chest", items.Nothing, nil)
	ip.Location("Ice Palace - Spike Room", items.KeyIP, spikes)
	ip.Location("Ice Palace - Map Chest", items.Nothing, hammerRoute)
	ip.Location("Ice Palace - Big Key Chest", items.BigKeyIP, hammerRoute)
	ip.Location("Ice Palace - Iced T Room", items.KeyIP, nil)
	ip.Location("Ice Palace - Freezor Chest", items.Nothing, nil)
	ip.Location("Ice Palace - Big Chest", items.ProgressiveTunic, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyIP)
	})
	ip.Location("Ice Palace - Kholdstare", items.HeartContainer, beatKholdstare)
	ip.Boss(items.Kholdstare, beatKholdstare, nil).Reward(items.CrystalRed, nil).Treasure(3)
}

func (d *definer) miseryMire() {
	l := d.l

	mm := d.b.Region(MiseryMire, "Dark World", items.Zelda).Dungeon(items.MiseryMire)
	mm.Prerequisite(items.Ether)
	swamp := mm.DependsOn(DarkWorldMire)
	mm.Entry(func(p progression.Progression, requireRewards bool) bool {
		return swamp.CanEnter(p, requireRewards) && p.MoonPearl() && p.Sword() &&
			(p.Boots() || p.Hookshot()) && l.CanKillManyEnemies(p)
	})
	lobby := func(p progression.Progression) bool {
		return p.Has(items.KeyMM, 1) || p.Contains(items.BigKeyMM)
	}
	torches := func(p progression.Progression) bool {
		return l.CanLightTorches(p) && p.Has(items.KeyMM, 3)
	}
	beatVitreous := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyMM) && p.Somaria() && (p.Sword() || p.Bow())
	}
	mm.Location("Misery Mire - Main Lobby", items.Nothing, lobby)
	mm.Location("Misery Mire - Map Chest", items.Nothing, lobby)
	mm.Location("Misery Mire - Bridge Chest", items.KeyMM, nil)
	mm.Location("Misery Mire - Spike Chest", items.KeyMM, nil)
	mm.Location("Misery Mire - Compass Chest", items.Nothing, torches)
	mm.Location("Misery Mire - Big Key Chest", items.BigKeyMM, torches)
	mm.Location("Misery Mire - Big Chest", items.Somaria, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyMM)
	})
	mm.Location("Misery Mire - Vitreous", items.HeartContainer, beatVitreous)
	mm.Boss(items.Vitreous, beatVitreous, nil).Reward(items.CrystalRed, nil).Treasure(2)
}

func (d *definer) turtleRock() {
	l := d.l

	tr := d.b.Region(TurtleRock, "Death Mountain", items.Zelda).Dungeon(items.TurtleRock)
	tr.Prerequisite(items.Quake)
	mountain := tr.DependsOn(LightWorldDeathMountainEast)
	tr.Entry(func(p progression.Progression, requireRewards bool) bool {
		return mountain.CanEnter(p, requireRewards) && p.MoonPearl() && l.CanLiftHeavy(p) &&
			p.Hammer() && p.Somaria() && p.Sword()
	})
	bigKeyChest := tr.LocationRef("Turtle Rock - Big Key Chest")
	rollers := func(p progression.Progression) bool { return p.FireRod() }
	crystaroller := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTR) && p.Has(items.KeyTR, 2)
	}
	bridge := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTR) && p.Has(items.KeyTR, 3) &&
			l.CanBlockLasers(p) && l.CanNavigateDarkRooms(p)
	}
	beatTrinexx := func(p progression.Progression) bool {
		return p.Contains(items.BigKeyTR) && p.Has(items.KeyTR, 4) && l.CanNavigateDarkRooms(p) &&
			p.FireRod() && p.IceRod() && (l.HasMasterSword(p) || p.Hammer())
	}
	tr.Location("Turtle Rock - Compass Chest", items.Nothing, nil)
	tr.Location("Turtle Rock - Roller Room - Left", items.Nothing, rollers)
	tr.Location("Turtle Rock - Roller Room - Right", items.Nothing, rollers)
	tr.Location("Turtle Rock - Chain Chomps", items.KeyTR, func(p progression.Progression) bool {
		return p.Has(items.KeyTR, 1)
	})
	tr.Location("Turtle Rock - Big Key Chest", items.BigKeyTR, func(p progression.Progression) bool {
		return p.Has(items.KeyTR, 4) || bigKeyChest.ItemIs(items.KeyTR) && p.Has(items.KeyTR, 2)
	})
	tr.Location("Turtle Rock - Big Chest", items.Nothing, crystaroller)
	tr.Location("Turtle Rock - Crystaroller Room", items.KeyTR, crystaroller)
	tr.Location("Turtle Rock - Eye Bridge - Top Right", items.Nothing, bridge)
	tr.Location("Turtle Rock - Eye Bridge - Top Left", items.Nothing, bridge)
	tr.Location("Turtle Rock - Eye Bridge - Bottom Right", items.Nothing, bridge)
	tr.Location("Turtle Rock - Eye Bridge - Bottom Left", items.Nothing, bridge)
	tr.Location("Turtle Rock - Trinexx", items.HeartContainer, beatTrinexx)
	tr.Boss(items.Trinexx, beatTrinexx, nil).Reward(items.CrystalBlue, nil).Treasure(5)
}

func (d *definer) ganonsTower() {
	l := d.l

	gt := d.b.Region(GanonsTower, "Dark World", items.Zelda).Dungeon(items.GanonsTower).Weight(1)
	mountain := gt.DependsOn(DarkWorldDeathMountainEast)
	gt.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && mountain.CanEnter(p, requireRewards) &&
			(!requireRewards || l.HasCrystalsForGanonsTower(p))
	})
	mapChest := gt.LocationRef("Ganon's Tower - Map Chest")
	hammerHook := func(p progression.Progression) bool { return p.Hammer() && p.Hookshot() }
	rightSide := func(p progression.Progression) bool {
		return hammerHook(p) && p.Has(items.KeyGT, 3)
	}
	leftSide := func(p progression.Progression) bool {
		return p.FireRod() && p.Somaria() && p.Has(items.KeyGT, 3)
	}
	eitherSide := func(p progression.Progression) bool {
		return (hammerHook(p) || p.Somaria() && p.FireRod()) && p.Has(items.KeyGT, 3)
	}
	bigKeyRoom := func(p progression.Progression) bool {
		return eitherSide(p) && (p.Sword() || p.Hammer())
	}
	upstairs := func(p progression.Progression) bool {
		return p.Bow() && l.CanLightTorches(p) && p.Contains(items.BigKeyGT) && p.Has(items.KeyGT, 3)
	}

	gt.Location("Ganon's Tower - Bob's Torch", items.Nothing, func(p progression.Progression) bool {
		return p.Boots()
	})
	gt.Location("Ganon's Tower - DMs Room - Top Left", items.Nothing, hammerHook)
	gt.Location("Ganon's Tower - DMs Room - Top Right", items.Nothing, hammerHook)
	gt.Location("Ganon's Tower - DMs Room - Bottom Left", items.Nothing, hammerHook)
	gt.Location("Ganon's Tower - DMs Room - Bottom Right", items.Nothing, hammerHook)
	gt.Location("Ganon's Tower - Map Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Hammer() && (p.Hookshot() || p.Boots()) &&
			(p.Has(items.KeyGT, 4) || mapChest.ItemIs(items.KeyGT) && p.Has(items.KeyGT, 3))
	})
	gt.Location("Ganon's Tower - Firesnake Room", items.KeyGT, func(p progression.Progression) bool {
		return hammerHook(p) && p.Has(items.KeyGT, 2)
	})
	gt.Location("Ganon's Tower - Randomizer Room - Top Left", items.Nothing, rightSide)
	gt.Location("Ganon's Tower - Randomizer Room - Top Right", items.Nothing, rightSide)
	gt.Location("Ganon's Tower - Randomizer Room - Bottom Left", items.Nothing, rightSide)
	gt.Location("Ganon's Tower - Randomizer Room - Bottom Right", items.Nothing, rightSide)
	gt.Location("Ganon's Tower - Hope Room - Left", items.Nothing, nil)
	gt.Location("Ganon's Tower - Hope Room - Right", items.Nothing, nil)
	gt.Location("Ganon's Tower - Tile Room", items.KeyGT, func(p progression.Progression) bool {
		return p.Somaria()
	})
	gt.Location("Ganon's Tower - Compass Room - Top Left", items.Nothing, leftSide)
	gt.Location("Ganon's Tower - Compass Room - Top Right", items.Nothing, leftSide)
	gt.Location("Ganon's Tower - Compass Room - Bottom Left", items.Nothing, leftSide)
	gt.Location("Ganon's Tower - Compass Room - Bottom Right", items.Nothing, leftSide)
	gt.Location("Ganon's Tower - Bob's Chest", items.Nothing, eitherSide)
	gt.Location("Ganon's Tower - Big Chest", items.Nothing, func(p progression.Progression) bool {
		return eitherSide(p) && p.Contains(items.BigKeyGT)
	})
	gt.Location("Ganon's Tower - Big Key Chest", items.BigKeyGT, bigKeyRoom)
	gt.Location("Ganon's Tower - Big Key Room - Left", items.Nothing, bigKeyRoom)
	gt.Location("Ganon's Tower - Big Key Room - Right", items.Nothing, bigKeyRoom)
	gt.Location("Ganon's Tower - Mini Helmasaur Room - Left", items.Nothing, upstairs)
	gt.Location("Ganon's Tower - Mini Helmasaur Room - Right", items.Nothing, upstairs)
	gt.Location("Ganon's Tower - Pre-Moldorm Chest", items.KeyGT, upstairs)
	gt.Location("Ganon's Tower - Moldorm Chest", items.Nothing, func(p progression.Progression) bool {
		return p.Contains(items.BigKeyGT) && p.Has(items.KeyGT, 4) && p.Bow() &&
			l.CanLightTorches(p) && p.Hookshot() && p.Sword()
	})
	gt.Treasure(20)

	pyramid := d.b.Region(Pyramid, "Dark World", items.Zelda).Dungeon(items.GanonsTower).Weight(2)
	ne := pyramid.DependsOn(DarkWorldNorthEast)
	pyramid.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && ne.CanEnter(p, requireRewards) &&
			(!requireRewards || l.HasCrystalsForGanon(p))
	})
	tower := pyramid.Ref(GanonsTower)
	pyramid.Boss(items.Ganon, func(p progression.Progression) bool {
		return l.HasMasterSword(p) && p.Bow() && p.SilverArrows() && l.CanLightTorches(p) &&
			p.Contains(items.BigKeyGT) && p.Has(items.KeyGT, 4) && tower.CanEnter(p, true)
	}, nil)
}
