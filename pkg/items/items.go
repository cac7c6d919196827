// Package items enumerates everything a player can collect in the combined
// Zelda / Super Metroid world: items, dungeon keys and keycards, dungeon
// rewards and bosses.
package items

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Game identifies which half of the combined world something belongs to.
type Game int

const (
	Zelda Game = iota
	Metroid
)

func (g Game) String() string {
	if g == Metroid {
		return "Metroid"
	}
	return "Zelda"
}

// Category groups item types by how they affect logic.
type Category int

const (
	// CategoryProgression items unlock new areas or abilities.
	CategoryProgression Category = iota
	// CategorySmallKey is a counted dungeon key.
	CategorySmallKey
	// CategoryBigKey opens a dungeon's big chest and boss door.
	CategoryBigKey
	// CategoryKeycard is a Super Metroid area keycard.
	CategoryKeycard
	// CategoryFiller never affects logic.
	CategoryFiller
)

// IsKey reports whether the category is one of the dungeon key kinds.
func (c Category) IsKey() bool {
	return c == CategorySmallKey || c == CategoryBigKey || c == CategoryKeycard
}

// ItemType identifies a collectible item.
type ItemType int

const (
	Nothing ItemType = iota

	ProgressiveSword
	ProgressiveShield
	ProgressiveGlove
	ProgressiveTunic
	Bow
	SilverArrows
	BlueBoomerang
	RedBoomerang
	Hookshot
	Mushroom
	Powder
	FireRod
	IceRod
	Bombos
	Ether
	Quake
	Lamp
	Hammer
	Shovel
	Flute
	Bugnet
	Book
	Bottle
	Somaria
	Byrna
	Cape
	Mirror
	Boots
	Flippers
	MoonPearl
	HalfMagic
	HeartContainer
	HeartPiece

	KeyHC
	KeyCT
	KeyDP
	KeyTH
	KeyPD
	KeySP
	KeySW
	KeyTT
	KeyIP
	KeyMM
	KeyTR
	KeyGT
	BigKeyEP
	BigKeyDP
	BigKeyTH
	BigKeyPD
	BigKeySP
	BigKeySW
	BigKeyTT
	BigKeyIP
	BigKeyMM
	BigKeyTR
	BigKeyGT

	Missile
	Super
	PowerBomb
	ETank
	ReserveTank
	Grapple
	XRay
	Charge
	Ice
	Wave
	Spazer
	Plasma
	Varia
	Gravity
	Morph
	Bombs
	SpringBall
	ScrewAttack
	HiJump
	SpaceJump
	SpeedBooster

	CardCrateriaL1
	CardCrateriaL2
	CardCrateriaBoss
	CardBrinstarL1
	CardBrinstarL2
	CardBrinstarBoss
	CardNorfairL1
	CardNorfairL2
	CardNorfairBoss
	CardMaridiaL1
	CardMaridiaL2
	CardMaridiaBoss
	CardWreckedShipL1
	CardWreckedShipBoss
	CardLowerNorfairL1
	CardLowerNorfairBoss

	// NumItemTypes is the size of the item enumeration.
	NumItemTypes
)

// Info describes an item type.
type Info struct {
	Name     string
	Game     Game
	Category Category
	// Max is the largest count that can be held.
	Max int
	// SearchMax is the largest count worth probing when looking for
	// missing items. Zero excludes the item from searches.
	SearchMax int
	Dungeon   Dungeon
}

func prog(name string, g Game, limit, searchMax int) Info {
	return Info{Name: name, Game: g, Category: CategoryProgression, Max: limit, SearchMax: searchMax}
}

func smallKey(name string, d Dungeon, limit int) Info {
	return Info{Name: name, Game: Zelda, Category: CategorySmallKey, Max: limit, SearchMax: limit, Dungeon: d}
}

func bigKey(name string, d Dungeon) Info {
	return Info{Name: name, Game: Zelda, Category: CategoryBigKey, Max: 1, SearchMax: 1, Dungeon: d}
}

func keycard(name string, d Dungeon) Info {
	return Info{Name: name, Game: Metroid, Category: CategoryKeycard, Max: 1, SearchMax: 1, Dungeon: d}
}

var itemInfo = [NumItemTypes]Info{
	Nothing: {Name: "Nothing", Category: CategoryFiller},

	ProgressiveSword:  prog("Progressive Sword", Zelda, 4, 2),
	ProgressiveShield: prog("Progressive Shield", Zelda, 3, 3),
	ProgressiveGlove:  prog("Progressive Glove", Zelda, 2, 2),
	ProgressiveTunic:  {Name: "Progressive Tunic", Game: Zelda, Category: CategoryFiller, Max: 2},
	Bow:               prog("Bow", Zelda, 1, 1),
	SilverArrows:      prog("Silver Arrows", Zelda, 1, 1),
	BlueBoomerang:     {Name: "Blue Boomerang", Game: Zelda, Category: CategoryFiller, Max: 1},
	RedBoomerang:      {Name: "Red Boomerang", Game: Zelda, Category: CategoryFiller, Max: 1},
	Hookshot:          prog("Hookshot", Zelda, 1, 1),
	Mushroom:          prog("Mushroom", Zelda, 1, 1),
	Powder:            prog("Magic Powder", Zelda, 1, 1),
	FireRod:           prog("Fire Rod", Zelda, 1, 1),
	IceRod:            prog("Ice Rod", Zelda, 1, 1),
	Bombos:            prog("Bombos", Zelda, 1, 1),
	Ether:             prog("Ether", Zelda, 1, 1),
	Quake:             prog("Quake", Zelda, 1, 1),
	Lamp:              prog("Lamp", Zelda, 1, 1),
	Hammer:            prog("Hammer", Zelda, 1, 1),
	Shovel:            prog("Shovel", Zelda, 1, 1),
	Flute:             prog("Flute", Zelda, 1, 1),
	Bugnet:            {Name: "Bug Catching Net", Game: Zelda, Category: CategoryFiller, Max: 1},
	Book:              prog("Book of Mudora", Zelda, 1, 1),
	Bottle:            prog("Bottle", Zelda, 4, 1),
	Somaria:           prog("Cane of Somaria", Zelda, 1, 1),
	Byrna:             prog("Cane of Byrna", Zelda, 1, 1),
	Cape:              prog("Magic Cape", Zelda, 1, 1),
	Mirror:            prog("Magic Mirror", Zelda, 1, 1),
	Boots:             prog("Pegasus Boots", Zelda, 1, 1),
	Flippers:          prog("Zora's Flippers", Zelda, 1, 1),
	MoonPearl:         prog("Moon Pearl", Zelda, 1, 1),
	HalfMagic:         prog("Half Magic", Zelda, 1, 1),
	HeartContainer:    {Name: "Heart Container", Game: Zelda, Category: CategoryFiller, Max: 11},
	HeartPiece:        {Name: "Piece of Heart", Game: Zelda, Category: CategoryFiller, Max: 24},

	KeyHC:    smallKey("Hyrule Castle Key", HyruleCastle, 1),
	KeyCT:    smallKey("Castle Tower Key", CastleTower, 2),
	KeyDP:    smallKey("Desert Palace Key", DesertPalace, 1),
	KeyTH:    smallKey("Tower of Hera Key", TowerOfHera, 1),
	KeyPD:    smallKey("Palace of Darkness Key", PalaceOfDarkness, 6),
	KeySP:    smallKey("Swamp Palace Key", SwampPalace, 1),
	KeySW:    smallKey("Skull Woods Key", SkullWoods, 3),
	KeyTT:    smallKey("Thieves' Town Key", ThievesTown, 1),
	KeyIP:    smallKey("Ice Palace Key", IcePalace, 2),
	KeyMM:    smallKey("Misery Mire Key", MiseryMire, 3),
	KeyTR:    smallKey("Turtle Rock Key", TurtleRock, 4),
	KeyGT:    smallKey("Ganon's Tower Key", GanonsTower, 4),
	BigKeyEP: bigKey("Eastern Palace Big Key", EasternPalace),
	BigKeyDP: bigKey("Desert Palace Big Key", DesertPalace),
	BigKeyTH: bigKey("Tower of Hera Big Key", TowerOfHera),
	BigKeyPD: bigKey("Palace of Darkness Big Key", PalaceOfDarkness),
	BigKeySP: bigKey("Swamp Palace Big Key", SwampPalace),
	BigKeySW: bigKey("Skull Woods Big Key", SkullWoods),
	BigKeyTT: bigKey("Thieves' Town Big Key", ThievesTown),
	BigKeyIP: bigKey("Ice Palace Big Key", IcePalace),
	BigKeyMM: bigKey("Misery Mire Big Key", MiseryMire),
	BigKeyTR: bigKey("Turtle Rock Big Key", TurtleRock),
	BigKeyGT: bigKey("Ganon's Tower Big Key", GanonsTower),

	Missile:      prog("Missile", Metroid, 46, 1),
	Super:        prog("Super Missile", Metroid, 10, 1),
	PowerBomb:    prog("Power Bomb", Metroid, 10, 2),
	ETank:        prog("Energy Tank", Metroid, 14, 5),
	ReserveTank:  {Name: "Reserve Tank", Game: Metroid, Category: CategoryProgression, Max: 4},
	Grapple:      prog("Grappling Beam", Metroid, 1, 1),
	XRay:         {Name: "X-Ray Scope", Game: Metroid, Category: CategoryFiller, Max: 1},
	Charge:       prog("Charge Beam", Metroid, 1, 1),
	Ice:          prog("Ice Beam", Metroid, 1, 1),
	Wave:         prog("Wave Beam", Metroid, 1, 1),
	Spazer:       {Name: "Spazer", Game: Metroid, Category: CategoryFiller, Max: 1},
	Plasma:       prog("Plasma Beam", Metroid, 1, 1),
	Varia:        prog("Varia Suit", Metroid, 1, 1),
	Gravity:      prog("Gravity Suit", Metroid, 1, 1),
	Morph:        prog("Morphing Ball", Metroid, 1, 1),
	Bombs:        prog("Morph Ball Bombs", Metroid, 1, 1),
	SpringBall:   prog("Spring Ball", Metroid, 1, 1),
	ScrewAttack:  prog("Screw Attack", Metroid, 1, 1),
	HiJump:       prog("Hi-Jump Boots", Metroid, 1, 1),
	SpaceJump:    prog("Space Jump", Metroid, 1, 1),
	SpeedBooster: prog("Speed Booster", Metroid, 1, 1),

	CardCrateriaL1:       keycard("Crateria Level 1 Keycard", Crateria),
	CardCrateriaL2:       keycard("Crateria Level 2 Keycard", Crateria),
	CardCrateriaBoss:     keycard("Crateria Boss Keycard", Crateria),
	CardBrinstarL1:       keycard("Brinstar Level 1 Keycard", Brinstar),
	CardBrinstarL2:       keycard("Brinstar Level 2 Keycard", Brinstar),
	CardBrinstarBoss:     keycard("Brinstar Boss Keycard", Brinstar),
	CardNorfairL1:        keycard("Norfair Level 1 Keycard", Norfair),
	CardNorfairL2:        keycard("Norfair Level 2 Keycard", Norfair),
	CardNorfairBoss:      keycard("Norfair Boss Keycard", Norfair),
	CardMaridiaL1:        keycard("Maridia Level 1 Keycard", Maridia),
	CardMaridiaL2:        keycard("Maridia Level 2 Keycard", Maridia),
	CardMaridiaBoss:      keycard("Maridia Boss Keycard", Maridia),
	CardWreckedShipL1:    keycard("Wrecked Ship Level 1 Keycard", WreckedShip),
	CardWreckedShipBoss:  keycard("Wrecked Ship Boss Keycard", WreckedShip),
	CardLowerNorfairL1:   keycard("Lower Norfair Level 1 Keycard", LowerNorfair),
	CardLowerNorfairBoss: keycard("Lower Norfair Boss Keycard", LowerNorfair),
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t >= 0 && t < NumItemTypes
}

// Info returns the static description of t. Unknown types describe
// themselves as filler with a zero max.
func (t ItemType) Info() Info {
	if !t.Valid() {
		return Info{Name: fmt.Sprintf("ItemType(%d)", int(t)), Category: CategoryFiller}
	}
	return itemInfo[t]
}

func (t ItemType) String() string {
	return t.Info().Name
}

// IsKey reports whether t is a small key, big key or keycard.
func (t ItemType) IsKey() bool {
	return t.Info().Category.IsKey()
}

// MarshalText encodes the item by name.
func (t ItemType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown item type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes an item name.
func (t *ItemType) UnmarshalText(text []byte) error {
	v, err := ParseItem(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// All returns every item type except Nothing, in declaration order.
func All() []ItemType {
	out := make([]ItemType, 0, NumItemTypes-1)
	for t := Nothing + 1; t < NumItemTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Normalize folds case and collapses punctuation so that spoken or typed
// names ("Hi-Jump Boots", "hijump boots") resolve to the same key.
func Normalize(name string) string {
	name = cases.Fold().String(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '\'', '.':
			return -1
		}
		return r
	}, strings.Join(strings.Fields(name), " "))
}

var itemsByName = func() map[string]ItemType {
	m := make(map[string]ItemType, NumItemTypes)
	for t := Nothing; t < NumItemTypes; t++ {
		m[Normalize(itemInfo[t].Name)] = t
	}
	return m
}()

// ParseItem resolves an item by its display name, ignoring case and
// punctuation.
func ParseItem(name string) (ItemType, error) {
	if t, ok := itemsByName[Normalize(name)]; ok {
		return t, nil
	}
	return Nothing, fmt.Errorf("unknown item %q", name)
}
