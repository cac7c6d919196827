package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
)

const (
	// PollInterval is how often to check the session for updates
	PollInterval = 250 * time.Millisecond
	// AutoTrackTimeout is max time to wait for the worker to apply a request
	AutoTrackTimeout = 30 * time.Second
)

// StatusError is returned when the API answers with an unexpected status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

// doJSON sends body (when non-nil) and decodes a response with the wanted
// status into out.
func doJSON(ctx context.Context, client *http.Client, method, url string, body, out any, want int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		return &StatusError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateSession starts a session from a preset or inline settings.
func CreateSession(ctx context.Context, client *http.Client, baseURL, preset string, settings map[string]any) (*handlers.SessionResponse, error) {
	req := handlers.CreateSessionRequest{Preset: preset}
	if settings != nil {
		raw, err := json.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal settings: %w", err)
		}
		req.Settings = raw
	}
	var out handlers.SessionResponse
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/v1/sessions", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSession removes a session; a missing one is not an error.
func DeleteSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) error {
	err := doJSON(ctx, client, http.MethodDelete, baseURL+"/v1/sessions/"+id.String(), nil, nil, http.StatusNoContent)
	if se, ok := err.(*StatusError); ok && se.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// GetSession retrieves the current session summary
func GetSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) (*handlers.SessionResponse, error) {
	var out handlers.SessionResponse
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/v1/sessions/"+id.String(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplyAction applies an action synchronously.
func ApplyAction(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, action handlers.ActionRequest) (*handlers.ActionResponse, error) {
	var out handlers.ActionResponse
	url := fmt.Sprintf("%s/v1/sessions/%s/actions", baseURL, id)
	if err := doJSON(ctx, client, http.MethodPost, url, action, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostAutoTrack queues an auto-tracker request and returns its request_id
func PostAutoTrack(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, action handlers.ActionRequest) (string, error) {
	var out handlers.AutoTrackResponse
	url := fmt.Sprintf("%s/v1/sessions/%s/autotrack", baseURL, id)
	if err := doJSON(ctx, client, http.MethodPost, url, action, &out, http.StatusAccepted); err != nil {
		return "", err
	}
	return out.RequestID, nil
}

// GetLocations lists node statuses, filtered by query.
func GetLocations(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, query url.Values) (*handlers.LocationsResponse, error) {
	var out handlers.LocationsResponse
	u := fmt.Sprintf("%s/v1/sessions/%s/locations", baseURL, id)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	if err := doJSON(ctx, client, http.MethodGet, u, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMissing runs a missing-items search.
func GetMissing(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, q MissingQuery) (*handlers.MissingResponse, error) {
	query := url.Values{}
	for k, v := range map[string]string{"location": q.Location, "boss": q.Boss, "reward": q.Reward, "baseline": q.Baseline} {
		if v != "" {
			query.Set(k, v)
		}
	}
	var out handlers.MissingResponse
	u := fmt.Sprintf("%s/v1/sessions/%s/missing?%s", baseURL, id, query.Encode())
	if err := doJSON(ctx, client, http.MethodGet, u, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PollForUpdate polls the session until its updated_at moves past since.
func PollForUpdate(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, since time.Time) (*handlers.SessionResponse, error) {
	timeout := time.After(AutoTrackTimeout)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, fmt.Errorf("timeout waiting for auto-track update (waited %v)", AutoTrackTimeout)
		case <-ticker.C:
			sess, err := GetSession(ctx, client, baseURL, id)
			if err != nil {
				continue
			}
			if sess.UpdatedAt.After(since) {
				return sess, nil
			}
		}
	}
}
