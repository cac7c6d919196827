package zelda

import (
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	"github.com/jwebster45206/smz3-tracker/pkg/progression"
)

func (d *definer) darkWorld() {
	l := d.l

	dmw := d.b.Region(DarkWorldDeathMountainWest, "Dark World", items.Zelda)
	lightWest := dmw.DependsOn(LightWorldDeathMountainWest)
	dmw.Entry(lightWest.CanEnter)
	dmw.Location("Spike Cave", items.Byrna, func(p progression.Progression) bool {
		return p.MoonPearl() && p.Hammer() && l.CanLiftLight(p) &&
			(l.CanExtendMagic(p, 2) && p.Cape() || p.Byrna())
	})

	dme := d.b.Region(DarkWorldDeathMountainEast, "Dark World", items.Zelda)
	lightEast := dme.DependsOn(LightWorldDeathMountainEast)
	dme.Entry(func(p progression.Progression, requireRewards bool) bool {
		return l.CanLiftHeavy(p) && lightEast.CanEnter(p, requireRewards)
	})
	pearl := func(p progression.Progression) bool { return p.MoonPearl() }
	dme.Location("Superbunny Cave - Top", items.Nothing, pearl)
	dme.Location("Superbunny Cave - Bottom", items.Nothing, pearl)
	hookshotCave := dme.Room("Hookshot Cave", func(p progression.Progression) bool {
		return p.MoonPearl() && l.CanLiftLight(p)
	})
	hookshot := func(p progression.Progression) bool { return p.Hookshot() }
	hookshotCave.Location("Hookshot Cave - Top Right", items.Nothing, hookshot)
	hookshotCave.Location("Hookshot Cave - Top Left", items.Nothing, hookshot)
	hookshotCave.Location("Hookshot Cave - Bottom Left", items.Nothing, hookshot)
	hookshotCave.Location("Hookshot Cave - Bottom Right", items.Nothing, func(p progression.Progression) bool {
		return p.Hookshot() || p.Boots()
	})

	nw := d.b.Region(DarkWorldNorthWest, "Dark World", items.Zelda)
	nw.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && ((agahnim(p, requireRewards) || l.CanAccessDarkWorldPortal(p) && p.Flippers()) &&
			p.Hookshot() && (p.Flippers() || l.CanLiftLight(p) || p.Hammer()) ||
			p.Hammer() && l.CanLiftLight(p) ||
			l.CanLiftHeavy(p))
	})
	nw.Location("Brewery", items.Nothing, nil)
	nw.Location("C-Shaped House", items.Nothing, nil)
	nw.Location("Chest Game", items.HeartPiece, nil)
	nw.Location("Hammer Pegs", items.HeartPiece, func(p progression.Progression) bool {
		return l.CanLiftHeavy(p) && p.Hammer()
	})
	nw.Location("Bumper Cave", items.HeartPiece, func(p progression.Progression) bool {
		return l.CanLiftLight(p) && p.Cape()
	})
	nw.Location("Blacksmith", items.ProgressiveSword, func(p progression.Progression) bool {
		return l.CanLiftHeavy(p)
	})
	nw.Location("Purple Chest", items.Bottle, func(p progression.Progression) bool {
		return l.CanLiftHeavy(p)
	})

	ne := d.b.Region(DarkWorldNorthEast, "Dark World", items.Zelda)
	ne.Entry(func(p progression.Progression, requireRewards bool) bool {
		return agahnim(p, requireRewards) ||
			p.MoonPearl() && (p.Hammer() && l.CanLiftLight(p) || l.CanLiftHeavy(p) && p.Flippers()) ||
			l.CanAccessDarkWorldPortal(p) && p.Flippers()
	})
	south := ne.Ref(DarkWorldSouth)
	ne.Location("Catfish", items.Quake, func(p progression.Progression) bool {
		return p.MoonPearl() && l.CanLiftLight(p)
	})
	fairy := func(p progression.Progression) bool {
		return l.HasRedCrystals(p) && p.MoonPearl() && south.CanEnter(p, true) &&
			(p.Hammer() || p.Mirror() && p.HasReward(items.RewardAgahnim))
	}
	ne.Location("Pyramid Fairy - Left", items.ProgressiveSword, fairy)
	ne.Location("Pyramid Fairy - Right", items.SilverArrows, fairy)
	ne.Location("Pyramid", items.HeartPiece, nil)

	s := d.b.Region(DarkWorldSouth, "Dark World", items.Zelda)
	s.Entry(func(p progression.Progression, requireRewards bool) bool {
		return p.MoonPearl() && ((agahnim(p, requireRewards) || l.CanAccessDarkWorldPortal(p) && p.Flippers()) &&
			(p.Hammer() || p.Hookshot() && (p.Flippers() || l.CanLiftLight(p))) ||
			p.Hammer() && l.CanLiftLight(p) ||
			l.CanLiftHeavy(p))
	})
	s.Location("Digging Game", items.HeartPiece, nil)
	s.Location("Stumpy", items.Shovel, nil)
	hype := s.Room("Hype Cave", nil)
	hype.Location("Hype Cave - Top", items.Nothing, nil)
	hype.Location("Hype Cave - Middle Right", items.Nothing, nil)
	hype.Location("Hype Cave - Middle Left", items.Nothing, nil)
	hype.Location("Hype Cave - Bottom", items.Nothing, nil)
	hype.Location("Hype Cave - NPC", items.Nothing, nil)

	mire := d.b.Region(DarkWorldMire, "Dark World", items.Zelda)
	mire.Entry(func(p progression.Progression, _ bool) bool {
		return p.Flute() && l.CanLiftHeavy(p) || l.CanAccessMiseryMirePortal(p)
	})
	mire.Location("Mire Shed - Left", items.HeartPiece, pearl)
	mire.Location("Mire Shed - Right", items.Nothing, pearl)
}
