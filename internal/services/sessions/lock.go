package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes mutations of one session across processes. Acquire
// returns a release func, or ok=false when another holder has the lock.
type Locker interface {
	Acquire(ctx context.Context, id uuid.UUID) (release func(), ok bool, err error)
}

// RedisLocker holds per-session locks as SetNX keys owned by a random
// token, so a worker never deletes a lock it lost to expiry.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisLocker returns a locker whose keys expire after ttl. A nil logger
// uses slog.Default.
func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{client: client, ttl: ttl, logger: logger}
}

func lockKey(id uuid.UUID) string {
	return fmt.Sprintf("tracker-lock:%s", id.String())
}

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

func (l *RedisLocker) Acquire(ctx context.Context, id uuid.UUID) (func(), bool, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, lockKey(id), token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// Release even if the caller's context is already done.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := releaseScript.Run(ctx, l.client, []string{lockKey(id)}, token).Int()
		switch {
		case err != nil:
			l.logger.Warn("Failed to release session lock", "session_id", id.String(), "error", err)
		case n == 0:
			l.logger.Warn("Session lock expired before release", "session_id", id.String(), "ttl", l.ttl)
		}
	}
	return release, true, nil
}

// LocalLocker is an in-process Locker for single-instance deployments and
// tests.
type LocalLocker struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[uuid.UUID]bool)}
}

func (l *LocalLocker) Acquire(ctx context.Context, id uuid.UUID) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[id] {
		return nil, false, nil
	}
	l.held[id] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, id)
	}, true, nil
}
