package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/smz3-tracker/pkg/queue"
)

const requestsKey = "autotrack-requests"

// AutoTrackQueue is the global FIFO of auto-tracker requests. Workers pop
// from it; each session's requests are applied in order under a session
// lock.
type AutoTrackQueue struct {
	client *Client
	logger *slog.Logger
}

func NewAutoTrackQueue(client *Client, logger *slog.Logger) *AutoTrackQueue {
	return &AutoTrackQueue{
		client: client,
		logger: logger,
	}
}

func historyKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("autotrack-history:%s", sessionID.String())
}

// EnqueueRequest validates req and appends it to the queue.
func (q *AutoTrackQueue) EnqueueRequest(ctx context.Context, req *queue.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}

	if err := q.client.rdb.RPush(ctx, requestsKey, data).Err(); err != nil {
		q.logger.Error("Failed to enqueue request", "error", err, "request_id", req.RequestID)
		return fmt.Errorf("failed to enqueue request: %w", err)
	}

	q.logger.Debug("Enqueued auto-track request",
		"request_id", req.RequestID,
		"session_id", req.SessionID.String(),
		"type", req.Type)
	return nil
}

// RequeueRequest puts req back at the head of the queue, used when the
// session is locked by another worker.
func (q *AutoTrackQueue) RequeueRequest(ctx context.Context, req *queue.Request) error {
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}
	if err := q.client.rdb.LPush(ctx, requestsKey, data).Err(); err != nil {
		return fmt.Errorf("failed to re-queue request: %w", err)
	}
	return nil
}

// DequeueRequest removes and returns the next request from the queue.
// Returns nil if the queue is empty.
func (q *AutoTrackQueue) DequeueRequest(ctx context.Context) (*queue.Request, error) {
	result, err := q.client.rdb.LPop(ctx, requestsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	req, err := queue.FromJSON([]byte(result))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return req, nil
}

// BlockingDequeueRequest waits up to timeout for a request. It returns nil
// when the timeout passes with the queue still empty.
func (q *AutoTrackQueue) BlockingDequeueRequest(ctx context.Context, timeout time.Duration) (*queue.Request, error) {
	result, err := q.client.rdb.BLPop(ctx, timeout, requestsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue request: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPop result: %v", result)
	}

	req, err := queue.FromJSON([]byte(result[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return req, nil
}

// Depth returns the number of requests waiting.
func (q *AutoTrackQueue) Depth(ctx context.Context) (int, error) {
	count, err := q.client.rdb.LLen(ctx, requestsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get request queue depth: %w", err)
	}
	return int(count), nil
}

// historyLimit bounds the per-session record of applied requests.
const historyLimit = 50

// RecordApplied appends req to the session's applied history, newest last.
func (q *AutoTrackQueue) RecordApplied(ctx context.Context, req *queue.Request) error {
	data, err := req.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}
	key := historyKey(req.SessionID)
	pipe := q.client.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -historyLimit, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		q.logger.Error("Failed to record applied request", "error", err, "request_id", req.RequestID)
		return fmt.Errorf("failed to record applied request: %w", err)
	}
	return nil
}

// History returns up to limit of the most recently applied requests for a
// session, oldest first. limit <= 0 returns everything kept.
func (q *AutoTrackQueue) History(ctx context.Context, sessionID uuid.UUID, limit int) ([]*queue.Request, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raw, err := q.client.rdb.LRange(ctx, historyKey(sessionID), start, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	out := make([]*queue.Request, 0, len(raw))
	for _, s := range raw {
		req, err := queue.FromJSON([]byte(s))
		if err != nil {
			q.logger.Warn("Skipping malformed history entry", "session_id", sessionID.String(), "error", err)
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// ClearHistory removes a session's history, used when the session is deleted.
func (q *AutoTrackQueue) ClearHistory(ctx context.Context, sessionID uuid.UUID) error {
	if err := q.client.rdb.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
