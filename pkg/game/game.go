// Package game assembles the combined SMZ3 world from both games'
// region definitions.
package game

import (
	"fmt"

	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
	"github.com/jwebster45206/smz3-tracker/pkg/world/metroid"
	"github.com/jwebster45206/smz3-tracker/pkg/world/zelda"
)

// BuildWorld constructs and validates the full world for cfg and seeds it
// from state when state is non-nil. A nil cfg uses settings.Default.
//
// Keysanity modes decide which keys are assumed, not which nodes exist, so
// changing them on cfg after construction takes effect on the next refresh.
func BuildWorld(cfg *settings.Config, state *world.State) (*world.World, error) {
	if cfg == nil {
		cfg = settings.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world settings: %w", err)
	}

	b := world.NewBuilder(cfg)
	metroid.Define(b)
	zelda.Define(b)
	w, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	if state != nil {
		if err := w.ApplyState(*state); err != nil {
			return nil, fmt.Errorf("failed to apply saved state: %w", err)
		}
	}
	return w, nil
}
