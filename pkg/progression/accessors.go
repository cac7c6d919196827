package progression

import "github.com/jwebster45206/smz3-tracker/pkg/items"

// Zelda

func (p Progression) Sword() bool       { return p.Contains(items.ProgressiveSword) }
func (p Progression) MasterSword() bool { return p.Has(items.ProgressiveSword, 2) }
func (p Progression) Glove() bool       { return p.Contains(items.ProgressiveGlove) }
func (p Progression) Mitt() bool        { return p.Has(items.ProgressiveGlove, 2) }
func (p Progression) MirrorShield() bool {
	return p.Has(items.ProgressiveShield, 3)
}
func (p Progression) Bow() bool          { return p.Contains(items.Bow) }
func (p Progression) SilverArrows() bool { return p.Contains(items.SilverArrows) }
func (p Progression) Hookshot() bool     { return p.Contains(items.Hookshot) }
func (p Progression) Mushroom() bool     { return p.Contains(items.Mushroom) }
func (p Progression) Powder() bool       { return p.Contains(items.Powder) }
func (p Progression) FireRod() bool      { return p.Contains(items.FireRod) }
func (p Progression) IceRod() bool       { return p.Contains(items.IceRod) }
func (p Progression) Bombos() bool       { return p.Contains(items.Bombos) }
func (p Progression) Ether() bool        { return p.Contains(items.Ether) }
func (p Progression) Quake() bool        { return p.Contains(items.Quake) }
func (p Progression) Lamp() bool         { return p.Contains(items.Lamp) }
func (p Progression) Hammer() bool       { return p.Contains(items.Hammer) }
func (p Progression) Shovel() bool       { return p.Contains(items.Shovel) }
func (p Progression) Flute() bool        { return p.Contains(items.Flute) }
func (p Progression) Book() bool         { return p.Contains(items.Book) }
func (p Progression) Bottle() bool       { return p.Contains(items.Bottle) }
func (p Progression) Somaria() bool      { return p.Contains(items.Somaria) }
func (p Progression) Byrna() bool        { return p.Contains(items.Byrna) }
func (p Progression) Cape() bool         { return p.Contains(items.Cape) }
func (p Progression) Mirror() bool       { return p.Contains(items.Mirror) }
func (p Progression) Boots() bool        { return p.Contains(items.Boots) }
func (p Progression) Flippers() bool     { return p.Contains(items.Flippers) }
func (p Progression) MoonPearl() bool    { return p.Contains(items.MoonPearl) }
func (p Progression) HalfMagic() bool    { return p.Contains(items.HalfMagic) }

// Super Metroid

func (p Progression) Missile() bool      { return p.Contains(items.Missile) }
func (p Progression) Super() bool        { return p.Contains(items.Super) }
func (p Progression) PowerBomb() bool    { return p.Contains(items.PowerBomb) }
func (p Progression) Grapple() bool      { return p.Contains(items.Grapple) }
func (p Progression) Charge() bool       { return p.Contains(items.Charge) }
func (p Progression) Ice() bool          { return p.Contains(items.Ice) }
func (p Progression) Wave() bool         { return p.Contains(items.Wave) }
func (p Progression) Plasma() bool       { return p.Contains(items.Plasma) }
func (p Progression) Varia() bool        { return p.Contains(items.Varia) }
func (p Progression) Gravity() bool      { return p.Contains(items.Gravity) }
func (p Progression) Morph() bool        { return p.Contains(items.Morph) }
func (p Progression) Bombs() bool        { return p.Contains(items.Bombs) }
func (p Progression) SpringBall() bool   { return p.Contains(items.SpringBall) }
func (p Progression) ScrewAttack() bool  { return p.Contains(items.ScrewAttack) }
func (p Progression) HiJump() bool       { return p.Contains(items.HiJump) }
func (p Progression) SpaceJump() bool    { return p.Contains(items.SpaceJump) }
func (p Progression) SpeedBooster() bool { return p.Contains(items.SpeedBooster) }

// EnergyReserves counts energy tanks and reserve tanks together.
func (p Progression) EnergyReserves() int {
	return p.Count(items.ETank) + p.Count(items.ReserveTank)
}

// Rewards

// Crystals counts obtained crystals of either colour.
func (p Progression) Crystals() int {
	return p.countRewards(items.RewardType.IsCrystal)
}

// Pendants counts obtained pendants.
func (p Progression) Pendants() int {
	return p.countRewards(items.RewardType.IsPendant)
}

func (p Progression) countRewards(match func(items.RewardType) bool) int {
	n := 0
	for r := items.NoReward + 1; r < items.NumRewardTypes; r++ {
		if match(r) {
			n += p.CountReward(r)
		}
	}
	return n
}
