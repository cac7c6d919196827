package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

func setup(t *testing.T) (*Broadcaster, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBroadcaster(client, logger.Discard()), client
}

// subscribe returns a function that waits for the next event on the
// session's channel.
func subscribe(t *testing.T, client *redis.Client, sessionID uuid.UUID) func() Event {
	t.Helper()
	ctx := context.Background()
	pubsub := client.Subscribe(ctx, Channel(sessionID))
	t.Cleanup(func() { _ = pubsub.Close() })
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)
	ch := pubsub.Channel()

	return func() Event {
		t.Helper()
		select {
		case msg := <-ch:
			var ev Event
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
			return ev
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return Event{}
		}
	}
}

func TestBroadcaster_TrackerEvent(t *testing.T) {
	b, client := setup(t)
	id := uuid.New()
	next := subscribe(t, client, id)

	err := b.PublishTrackerEvent(context.Background(), tracker.Event{
		SessionID: id,
		Kind:      tracker.EventTrack,
		Subject:   "Hookshot",
		Changes: []world.Change{
			{Node: world.LocationNode(300), Name: "Spike Cave", Previous: world.OutOfLogic, Current: world.Available},
		},
	})
	require.NoError(t, err)

	ev := next()
	assert.Equal(t, EventTypeTrackerUpdated, ev.Type)
	assert.Equal(t, id.String(), ev.SessionID)
	assert.Equal(t, "track", ev.Data["kind"])
	assert.Equal(t, "Hookshot", ev.Data["subject"])

	changes, ok := ev.Data["changes"].([]interface{})
	require.True(t, ok)
	require.Len(t, changes, 1)
	change := changes[0].(map[string]interface{})
	assert.Equal(t, "Spike Cave", change["name"])
	assert.Equal(t, "location:300", change["node"])
	assert.Equal(t, world.Available.String(), change["current"])
}

func TestBroadcaster_Lifecycle(t *testing.T) {
	b, client := setup(t)
	id := uuid.New()
	next := subscribe(t, client, id)
	ctx := context.Background()

	require.NoError(t, b.PublishSessionCreated(ctx, id))
	require.NoError(t, b.PublishAutoTrackQueued(ctx, id, "req-1", "track", "Ice Beam"))
	require.NoError(t, b.PublishAutoTrackApplied(ctx, id, "req-1", 3))
	require.NoError(t, b.PublishAutoTrackFailed(ctx, id, "req-2", "unknown item"))
	require.NoError(t, b.PublishSessionDeleted(ctx, id))

	tests := []struct {
		typ       EventType
		requestID string
		key       string
		value     interface{}
	}{
		{EventTypeSessionCreated, "", "", nil},
		{EventTypeAutoTrackQueued, "req-1", "value", "Ice Beam"},
		{EventTypeAutoTrackApplied, "req-1", "changed", float64(3)},
		{EventTypeAutoTrackFailed, "req-2", "error", "unknown item"},
		{EventTypeSessionDeleted, "", "", nil},
	}
	for _, tt := range tests {
		ev := next()
		assert.Equal(t, tt.typ, ev.Type)
		assert.Equal(t, tt.requestID, ev.RequestID)
		if tt.key != "" {
			assert.Equal(t, tt.value, ev.Data[tt.key])
		}
	}
}

func TestBroadcaster_ClosedClient(t *testing.T) {
	b, client := setup(t)
	require.NoError(t, client.Close())
	assert.Error(t, b.PublishSessionCreated(context.Background(), uuid.New()))
}
