package search

import (
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/items"
)

// Kind tells what a Token adds to a progression.
type Kind int

const (
	KindItem Kind = iota
	KindReward
	KindBoss
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindReward:
		return "reward"
	case KindBoss:
		return "boss"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one unit a search may add: an item, a collected reward or a
// defeated boss.
type Token struct {
	Kind   Kind
	Item   items.ItemType
	Reward items.RewardType
	Boss   items.BossType
}

func ItemToken(t items.ItemType) Token     { return Token{Kind: KindItem, Item: t} }
func RewardToken(r items.RewardType) Token { return Token{Kind: KindReward, Reward: r} }
func BossToken(b items.BossType) Token     { return Token{Kind: KindBoss, Boss: b} }

func (t Token) String() string {
	switch t.Kind {
	case KindReward:
		return t.Reward.String()
	case KindBoss:
		return t.Boss.String() + " defeated"
	}
	return t.Item.String()
}

// limit is the most units of t a search will add.
func (t Token) limit() int {
	switch t.Kind {
	case KindReward:
		return t.Reward.Max()
	case KindBoss:
		return 1
	}
	return t.Item.Info().SearchMax
}

// Candidates lists every token worth probing: items with a search limit,
// all rewards and all bosses. Keys are included; when the baseline already
// assumes them they add nothing and are skipped.
func Candidates() []Token {
	var out []Token
	for _, t := range items.All() {
		if t.Info().SearchMax > 0 {
			out = append(out, ItemToken(t))
		}
	}
	for _, r := range items.Rewards() {
		out = append(out, RewardToken(r))
	}
	for _, b := range items.Bosses() {
		out = append(out, BossToken(b))
	}
	return out
}
