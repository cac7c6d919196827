package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestType identifies what an auto-tracker request does to a session.
type RequestType string

const (
	RequestTypeTrack        RequestType = "track"
	RequestTypeUntrack      RequestType = "untrack"
	RequestTypeDefeatBoss   RequestType = "defeat_boss"
	RequestTypeReviveBoss   RequestType = "revive_boss"
	RequestTypeObtainReward RequestType = "obtain_reward"
	RequestTypeLoseReward   RequestType = "lose_reward"
	RequestTypeClear        RequestType = "clear"
	RequestTypeUnclear      RequestType = "unclear"
	RequestTypeMark         RequestType = "mark"
	RequestTypeMedallion    RequestType = "medallion"
	RequestTypeSetItem      RequestType = "set_item"
)

// Request is one event from an auto-tracker (or any other client) queued
// for a session.
type Request struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`
	SessionID uuid.UUID   `json:"session_id"`

	// Value names an item, boss or reward depending on Type.
	Value string `json:"value,omitempty"`
	// Target names the location (clear, unclear, mark, set_item) or region
	// (rewards, medallion) the request applies to.
	Target string `json:"target,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewRequest stamps a request with a fresh ID and the current time.
func NewRequest(sessionID uuid.UUID, typ RequestType, value, target string) *Request {
	return &Request{
		RequestID:  uuid.New().String(),
		Type:       typ,
		SessionID:  sessionID,
		Value:      value,
		Target:     target,
		EnqueuedAt: time.Now(),
	}
}

// Validate checks that the fields Type needs are present. Names are
// resolved later against the session.
func (r *Request) Validate() error {
	if r.SessionID == uuid.Nil {
		return errors.New("session_id is required")
	}
	switch r.Type {
	case RequestTypeTrack, RequestTypeUntrack, RequestTypeDefeatBoss, RequestTypeReviveBoss:
		if r.Value == "" {
			return fmt.Errorf("%s requires a value", r.Type)
		}
	case RequestTypeObtainReward, RequestTypeLoseReward, RequestTypeClear, RequestTypeUnclear:
		if r.Target == "" {
			return fmt.Errorf("%s requires a target", r.Type)
		}
	case RequestTypeMark, RequestTypeMedallion, RequestTypeSetItem:
		if r.Value == "" || r.Target == "" {
			return fmt.Errorf("%s requires a value and a target", r.Type)
		}
	default:
		return fmt.Errorf("unknown request type %q", r.Type)
	}
	return nil
}

// ToJSON converts the request to JSON bytes for Redis
func (r *Request) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// FromJSON parses a request from JSON bytes
func FromJSON(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
