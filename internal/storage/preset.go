package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
)

// Settings preset operations (filesystem-backed)

var presetExts = []string{".yaml", ".yml", ".json"}

func (r *RedisStorage) presetsDir() string {
	return filepath.Join(r.dataDir, "presets")
}

func (r *RedisStorage) ListPresets(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.presetsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read presets directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, want := range presetExts {
			if ext == want {
				names = append(names, strings.TrimSuffix(entry.Name(), ext))
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *RedisStorage) GetPreset(ctx context.Context, name string) (*settings.Config, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: %q", storage.ErrPresetNotFound, name)
	}
	for _, ext := range presetExts {
		path := filepath.Join(r.presetsDir(), name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := settings.LoadFromPath(path)
		if err != nil {
			r.logger.Error("Failed to load preset", "preset", name, "path", path, "error", err)
			return nil, fmt.Errorf("failed to load preset %s: %w", name, err)
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrPresetNotFound, name)
}
