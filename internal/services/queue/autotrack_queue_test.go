package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/queue"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient("redis://"+mr.Addr(), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient("redis://"+addr, logger.Discard())
	assert.Error(t, err)
}

func TestAutoTrackQueue_FIFO(t *testing.T) {
	client, _ := setupTestRedis(t)
	q := NewAutoTrackQueue(client, logger.Discard())
	ctx := context.Background()
	session := uuid.New()

	reqs := []*queue.Request{
		queue.NewRequest(session, queue.RequestTypeTrack, "Morphing Ball", ""),
		queue.NewRequest(session, queue.RequestTypeTrack, "Bomb", ""),
		queue.NewRequest(session, queue.RequestTypeDefeatBoss, "Kraid", ""),
	}
	for _, r := range reqs {
		require.NoError(t, q.EnqueueRequest(ctx, r))
	}

	depth, err := q.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	for _, want := range reqs {
		got, err := q.DequeueRequest(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.RequestID, got.RequestID)
		assert.Equal(t, want.Value, got.Value)
	}

	got, err := q.DequeueRequest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAutoTrackQueue_RejectsInvalid(t *testing.T) {
	client, _ := setupTestRedis(t)
	q := NewAutoTrackQueue(client, logger.Discard())
	ctx := context.Background()

	err := q.EnqueueRequest(ctx, &queue.Request{SessionID: uuid.New(), Type: queue.RequestTypeClear})
	assert.Error(t, err)
	depth, err := q.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, depth)
}

func TestAutoTrackQueue_Requeue(t *testing.T) {
	client, _ := setupTestRedis(t)
	q := NewAutoTrackQueue(client, logger.Discard())
	ctx := context.Background()
	session := uuid.New()

	first := queue.NewRequest(session, queue.RequestTypeTrack, "Lamp", "")
	second := queue.NewRequest(session, queue.RequestTypeTrack, "Hammer", "")
	require.NoError(t, q.EnqueueRequest(ctx, first))
	require.NoError(t, q.EnqueueRequest(ctx, second))

	got, err := q.DequeueRequest(ctx)
	require.NoError(t, err)
	require.NoError(t, q.RequeueRequest(ctx, got))

	// A requeued request keeps its place ahead of later ones.
	got, err = q.DequeueRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.RequestID, got.RequestID)
}

func TestAutoTrackQueue_BlockingDequeue(t *testing.T) {
	client, _ := setupTestRedis(t)
	q := NewAutoTrackQueue(client, logger.Discard())
	ctx := context.Background()

	got, err := q.BlockingDequeueRequest(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, got)

	req := queue.NewRequest(uuid.New(), queue.RequestTypeClear, "", "Sahasrahla")
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = q.EnqueueRequest(ctx, req)
	}()
	got, err = q.BlockingDequeueRequest(ctx, 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, req.RequestID, got.RequestID)
}

func TestAutoTrackQueue_MalformedEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	q := NewAutoTrackQueue(client, logger.Discard())

	_, err := mr.RPush(requestsKey, "{garbage")
	require.NoError(t, err)
	_, err = q.DequeueRequest(context.Background())
	assert.Error(t, err)
}

func TestAutoTrackQueue_History(t *testing.T) {
	client, _ := setupTestRedis(t)
	q := NewAutoTrackQueue(client, logger.Discard())
	ctx := context.Background()
	session := uuid.New()
	other := uuid.New()

	for i := 0; i < historyLimit+5; i++ {
		require.NoError(t, q.RecordApplied(ctx, queue.NewRequest(session, queue.RequestTypeTrack, "Missile", "")))
	}
	last := queue.NewRequest(session, queue.RequestTypeTrack, "Super Missile", "")
	require.NoError(t, q.RecordApplied(ctx, last))
	require.NoError(t, q.RecordApplied(ctx, queue.NewRequest(other, queue.RequestTypeTrack, "Lamp", "")))

	all, err := q.History(ctx, session, 0)
	require.NoError(t, err)
	assert.Len(t, all, historyLimit)
	assert.Equal(t, last.RequestID, all[len(all)-1].RequestID)

	recent, err := q.History(ctx, session, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Super Missile", recent[1].Value)

	require.NoError(t, q.ClearHistory(ctx, session))
	all, err = q.History(ctx, session, 0)
	require.NoError(t, err)
	assert.Empty(t, all)

	kept, err := q.History(ctx, other, 0)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
