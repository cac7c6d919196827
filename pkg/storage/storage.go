package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

// ErrPresetNotFound is returned by GetPreset for an unknown preset name.
var ErrPresetNotFound = errors.New("preset not found")

// Storage persists tracker sessions (Redis-backed) and serves settings
// presets (filesystem-backed).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations. LoadSession returns nil, nil when the session
	// does not exist.
	SaveSession(ctx context.Context, snap *tracker.Snapshot) error
	LoadSession(ctx context.Context, id uuid.UUID) (*tracker.Snapshot, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListSessions(ctx context.Context) ([]uuid.UUID, error)

	// Settings presets
	ListPresets(ctx context.Context) ([]string, error)
	GetPreset(ctx context.Context, name string) (*settings.Config, error)
}
