package items

import "fmt"

// RewardType is what a dungeon hands out once its boss is beaten.
type RewardType int

const (
	NoReward RewardType = iota
	PendantGreen
	PendantRed
	PendantBlue
	CrystalBlue
	CrystalRed
	RewardAgahnim

	NumRewardTypes
)

var rewardInfo = [NumRewardTypes]struct {
	name string
	max  int
}{
	NoReward:      {"Unknown", 0},
	PendantGreen:  {"Green Pendant", 1},
	PendantRed:    {"Red Pendant", 1},
	PendantBlue:   {"Blue Pendant", 1},
	CrystalBlue:   {"Crystal", 5},
	CrystalRed:    {"Red Crystal", 2},
	RewardAgahnim: {"Agahnim", 1},
}

// Valid reports whether r is a known reward type.
func (r RewardType) Valid() bool {
	return r >= 0 && r < NumRewardTypes
}

func (r RewardType) String() string {
	if !r.Valid() {
		return fmt.Sprintf("RewardType(%d)", int(r))
	}
	return rewardInfo[r].name
}

// Max is how many regions can carry this reward in one world.
func (r RewardType) Max() int {
	if !r.Valid() {
		return 0
	}
	return rewardInfo[r].max
}

func (r RewardType) IsPendant() bool {
	return r == PendantGreen || r == PendantRed || r == PendantBlue
}

func (r RewardType) IsCrystal() bool {
	return r == CrystalBlue || r == CrystalRed
}

func (r RewardType) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown reward type %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *RewardType) UnmarshalText(text []byte) error {
	v, err := ParseReward(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Rewards returns every reward type except NoReward.
func Rewards() []RewardType {
	out := make([]RewardType, 0, NumRewardTypes-1)
	for r := NoReward + 1; r < NumRewardTypes; r++ {
		out = append(out, r)
	}
	return out
}

// ParseReward resolves a reward by name, ignoring case and punctuation.
func ParseReward(name string) (RewardType, error) {
	key := Normalize(name)
	for r := NoReward; r < NumRewardTypes; r++ {
		if Normalize(rewardInfo[r].name) == key {
			return r, nil
		}
	}
	return NoReward, fmt.Errorf("unknown reward %q", name)
}
