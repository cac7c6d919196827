package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		depth          DepthFunc
		expectedStatus int
		expectedHealth string
		expectedStore  string
		expectedQueue  string
	}{
		{
			name:           "all healthy",
			depth:          func(context.Context) (int, error) { return 3, nil },
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedStore:  "healthy",
			expectedQueue:  "healthy",
		},
		{
			name:           "unhealthy storage",
			pingErr:        errors.New("connection failed"),
			depth:          func(context.Context) (int, error) { return 0, nil },
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "degraded",
			expectedStore:  "unhealthy",
			expectedQueue:  "healthy",
		},
		{
			name:           "unhealthy queue",
			depth:          func(context.Context) (int, error) { return 0, errors.New("queue down") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "degraded",
			expectedStore:  "healthy",
			expectedQueue:  "unhealthy",
		},
		{
			name:           "no queue configured",
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedStore:  "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockStorage()
			store.SetPingError(tt.pingErr)
			handler := NewHealthHandler(store, tt.depth, logger.Discard())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if rr.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
			}

			var response HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Status != tt.expectedHealth {
				t.Errorf("Expected status '%s', got '%s'", tt.expectedHealth, response.Status)
			}
			if response.Service != "smz3-tracker" {
				t.Errorf("Expected service 'smz3-tracker', got '%s'", response.Service)
			}
			if got := response.Components["storage"]; got != tt.expectedStore {
				t.Errorf("Expected storage status '%s', got '%v'", tt.expectedStore, got)
			}

			queueComponent, exists := response.Components["autotrack_queue"]
			if tt.expectedQueue == "" {
				if exists {
					t.Error("Expected no queue component")
				}
			} else {
				queueMap, ok := queueComponent.(map[string]interface{})
				if !ok {
					t.Fatalf("Expected queue component to be a map, got %T", queueComponent)
				}
				if queueMap["status"] != tt.expectedQueue {
					t.Errorf("Expected queue status '%s', got '%v'", tt.expectedQueue, queueMap["status"])
				}
			}

			if time.Since(response.Timestamp) > time.Second {
				t.Errorf("Health check timestamp seems old: %v", response.Timestamp)
			}
		})
	}
}
