package progression

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
)

type progressionJSON struct {
	Items    map[items.ItemType]int   `json:"items,omitempty"`
	Rewards  map[items.RewardType]int `json:"rewards,omitempty"`
	Defeated []items.BossType         `json:"defeated,omitempty"`
}

// MarshalJSON encodes the progression by item, reward and boss name.
func (p Progression) MarshalJSON() ([]byte, error) {
	out := progressionJSON{
		Items:   make(map[items.ItemType]int),
		Rewards: make(map[items.RewardType]int),
	}
	for _, ic := range p.Items() {
		out.Items[ic.Item] = ic.Count
	}
	for _, r := range items.Rewards() {
		if n := p.CountReward(r); n > 0 {
			out.Rewards[r] = n
		}
	}
	for _, b := range items.Bosses() {
		if p.Defeated(b) {
			out.Defeated = append(out.Defeated, b)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (p *Progression) UnmarshalJSON(data []byte) error {
	var in progressionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to unmarshal progression: %w", err)
	}
	var out Progression
	for t, n := range in.Items {
		out = out.WithCount(t, n)
	}
	for r, n := range in.Rewards {
		out = out.WithRewardCount(r, n)
	}
	for _, b := range in.Defeated {
		out = out.WithBoss(b, true)
	}
	*p = out
	return nil
}
