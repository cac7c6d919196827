package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/progression"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

// Snapshot is everything needed to restore a session.
type Snapshot struct {
	ID          uuid.UUID               `json:"id"`
	Settings    *settings.Config        `json:"settings"`
	Progression progression.Progression `json:"progression"`
	World       world.State             `json:"world"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Snapshot captures the session for persistence.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		ID:          t.id,
		Settings:    t.cfg.Clone(),
		Progression: t.tracked,
		World:       t.world.Snapshot(),
		UpdatedAt:   t.updatedAt,
	}
}
