package items

import "fmt"

// Dungeon identifies a key scope: a Zelda dungeon or a Super Metroid area
// with its own keycards.
type Dungeon int

const (
	NoDungeon Dungeon = iota
	HyruleCastle
	CastleTower
	EasternPalace
	DesertPalace
	TowerOfHera
	PalaceOfDarkness
	SwampPalace
	SkullWoods
	ThievesTown
	IcePalace
	MiseryMire
	TurtleRock
	GanonsTower
	Crateria
	Brinstar
	Norfair
	LowerNorfair
	Maridia
	WreckedShip

	NumDungeons
)

var dungeonNames = [NumDungeons]string{
	NoDungeon:        "None",
	HyruleCastle:     "Hyrule Castle",
	CastleTower:      "Castle Tower",
	EasternPalace:    "Eastern Palace",
	DesertPalace:     "Desert Palace",
	TowerOfHera:      "Tower of Hera",
	PalaceOfDarkness: "Palace of Darkness",
	SwampPalace:      "Swamp Palace",
	SkullWoods:       "Skull Woods",
	ThievesTown:      "Thieves' Town",
	IcePalace:        "Ice Palace",
	MiseryMire:       "Misery Mire",
	TurtleRock:       "Turtle Rock",
	GanonsTower:      "Ganon's Tower",
	Crateria:         "Crateria",
	Brinstar:         "Brinstar",
	Norfair:          "Norfair",
	LowerNorfair:     "Lower Norfair",
	Maridia:          "Maridia",
	WreckedShip:      "Wrecked Ship",
}

func (d Dungeon) String() string {
	if d < 0 || d >= NumDungeons {
		return fmt.Sprintf("Dungeon(%d)", int(d))
	}
	return dungeonNames[d]
}

// Game returns the half of the world the dungeon belongs to.
func (d Dungeon) Game() Game {
	if d >= Crateria {
		return Metroid
	}
	return Zelda
}

var dungeonKeys = func() [NumDungeons][]ItemType {
	var keys [NumDungeons][]ItemType
	for t := Nothing; t < NumItemTypes; t++ {
		info := itemInfo[t]
		if info.Category.IsKey() && info.Dungeon != NoDungeon {
			keys[info.Dungeon] = append(keys[info.Dungeon], t)
		}
	}
	return keys
}()

// Keys returns the small keys, big keys or keycards that belong to d.
func (d Dungeon) Keys() []ItemType {
	if d <= NoDungeon || d >= NumDungeons {
		return nil
	}
	return dungeonKeys[d]
}

// Dungeons returns every dungeon of the given game.
func Dungeons(g Game) []Dungeon {
	var out []Dungeon
	for d := NoDungeon + 1; d < NumDungeons; d++ {
		if d.Game() == g {
			out = append(out, d)
		}
	}
	return out
}

// AllDungeons returns every key scope of both games.
func AllDungeons() []Dungeon {
	out := make([]Dungeon, 0, NumDungeons-1)
	for d := NoDungeon + 1; d < NumDungeons; d++ {
		out = append(out, d)
	}
	return out
}
