package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
)

// APIClient talks to the tracker API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, client: client}
}

func (c *APIClient) Healthy() bool {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// do sends a request and decodes a successful response into out.
func (c *APIClient) do(method, path string, body, out interface{}, want int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(data, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *APIClient) ListPresets() ([]string, error) {
	var resp struct {
		Presets []string `json:"presets"`
	}
	if err := c.do(http.MethodGet, "/v1/presets", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Presets, nil
}

// CreateSession starts a session from preset, or the server defaults when
// preset is empty.
func (c *APIClient) CreateSession(preset string) (*handlers.SessionResponse, error) {
	var out handlers.SessionResponse
	req := handlers.CreateSessionRequest{Preset: preset}
	if err := c.do(http.MethodPost, "/v1/sessions", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) GetSession(id uuid.UUID) (*handlers.SessionResponse, error) {
	var out handlers.SessionResponse
	if err := c.do(http.MethodGet, "/v1/sessions/"+id.String(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Locations(id uuid.UUID, query url.Values) (*handlers.LocationsResponse, error) {
	path := "/v1/sessions/" + id.String() + "/locations"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out handlers.LocationsResponse
	if err := c.do(http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Apply(id uuid.UUID, action handlers.ActionRequest) (*handlers.ActionResponse, error) {
	var out handlers.ActionResponse
	if err := c.do(http.MethodPost, "/v1/sessions/"+id.String()+"/actions", action, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Missing asks what a location, boss or reward region still needs. kind is
// the query parameter: location, boss or reward.
func (c *APIClient) Missing(id uuid.UUID, kind, name string) (*handlers.MissingResponse, error) {
	q := url.Values{kind: {name}}
	var out handlers.MissingResponse
	if err := c.do(http.MethodGet, "/v1/sessions/"+id.String()+"/missing?"+q.Encode(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
