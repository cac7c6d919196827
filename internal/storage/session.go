package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

const sessionPrefix = "tracker:"

func sessionKey(id uuid.UUID) string {
	return sessionPrefix + id.String()
}

// Session operations (Redis-backed)

func (r *RedisStorage) SaveSession(ctx context.Context, snap *tracker.Snapshot) error {
	if snap == nil {
		return errors.New("session cannot be nil")
	}
	if snap.ID == uuid.Nil {
		return errors.New("session id cannot be empty")
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now()
	}

	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal session", "uuid", snap.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(snap.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", "uuid", snap.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*tracker.Snapshot, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Session not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var snap tracker.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		r.logger.Error("Failed to unmarshal session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// Reading a session keeps it alive.
	if err := r.client.Expire(ctx, sessionKey(id), r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to refresh session ttl", "uuid", id, "error", err)
	}
	return &snap, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStorage) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	iter := r.client.Scan(ctx, 0, sessionPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		id, err := uuid.Parse(strings.TrimPrefix(iter.Val(), sessionPrefix))
		if err != nil {
			r.logger.Warn("Skipping malformed session key", "key", iter.Val())
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to list sessions", "error", err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}
