package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeSessionCreated   EventType = "session.created"
	EventTypeSessionDeleted   EventType = "session.deleted"
	EventTypeTrackerUpdated   EventType = "tracker.updated"
	EventTypeAutoTrackQueued  EventType = "autotrack.queued"
	EventTypeAutoTrackApplied EventType = "autotrack.applied"
	EventTypeAutoTrackFailed  EventType = "autotrack.failed"
)

// Event is the envelope published on a session's channel.
type Event struct {
	Type      EventType              `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Channel returns the pub/sub channel for a session.
func Channel(sessionID uuid.UUID) string {
	return fmt.Sprintf("tracker-events:%s", sessionID.String())
}

// Broadcaster publishes events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishSessionCreated publishes a session.created event
func (b *Broadcaster) PublishSessionCreated(ctx context.Context, sessionID uuid.UUID) error {
	return b.publish(ctx, sessionID, Event{Type: EventTypeSessionCreated})
}

// PublishSessionDeleted publishes a session.deleted event
func (b *Broadcaster) PublishSessionDeleted(ctx context.Context, sessionID uuid.UUID) error {
	return b.publish(ctx, sessionID, Event{Type: EventTypeSessionDeleted})
}

// PublishTrackerEvent forwards a tracker mutation with the nodes whose
// accessibility changed.
func (b *Broadcaster) PublishTrackerEvent(ctx context.Context, ev tracker.Event) error {
	changes := make([]map[string]interface{}, 0, len(ev.Changes))
	for _, c := range ev.Changes {
		changes = append(changes, map[string]interface{}{
			"node":     c.Node.String(),
			"name":     c.Name,
			"previous": c.Previous.String(),
			"current":  c.Current.String(),
		})
	}
	return b.publish(ctx, ev.SessionID, Event{
		Type: EventTypeTrackerUpdated,
		Data: map[string]interface{}{
			"kind":    string(ev.Kind),
			"subject": ev.Subject,
			"changes": changes,
		},
	})
}

// PublishAutoTrackQueued publishes an autotrack.queued event
func (b *Broadcaster) PublishAutoTrackQueued(ctx context.Context, sessionID uuid.UUID, requestID, kind, value string) error {
	return b.publish(ctx, sessionID, Event{
		Type:      EventTypeAutoTrackQueued,
		RequestID: requestID,
		Data: map[string]interface{}{
			"kind":  kind,
			"value": value,
		},
	})
}

// PublishAutoTrackApplied publishes an autotrack.applied event
func (b *Broadcaster) PublishAutoTrackApplied(ctx context.Context, sessionID uuid.UUID, requestID string, changed int) error {
	return b.publish(ctx, sessionID, Event{
		Type:      EventTypeAutoTrackApplied,
		RequestID: requestID,
		Data: map[string]interface{}{
			"changed": changed,
		},
	})
}

// PublishAutoTrackFailed publishes an autotrack.failed event
func (b *Broadcaster) PublishAutoTrackFailed(ctx context.Context, sessionID uuid.UUID, requestID, errorMsg string) error {
	return b.publish(ctx, sessionID, Event{
		Type:      EventTypeAutoTrackFailed,
		RequestID: requestID,
		Data: map[string]interface{}{
			"error": errorMsg,
		},
	})
}

// publish publishes an event to the session-specific channel
func (b *Broadcaster) publish(ctx context.Context, sessionID uuid.UUID, event Event) error {
	event.SessionID = sessionID.String()
	channel := Channel(sessionID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"request_id", event.RequestID,
	)
	return nil
}
