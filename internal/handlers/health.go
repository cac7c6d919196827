package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/smz3-tracker/pkg/storage"
)

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

// DepthFunc reports the auto-track queue depth.
type DepthFunc func(ctx context.Context) (int, error)

type HealthHandler struct {
	storage    storage.Storage
	queueDepth DepthFunc
	logger     *slog.Logger
}

// NewHealthHandler builds the health endpoint. queueDepth may be nil when
// no queue is configured.
func NewHealthHandler(storage storage.Storage, queueDepth DepthFunc, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage:    storage,
		queueDepth: queueDepth,
		logger:     logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]interface{})
	overallStatus := "healthy"

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		components["storage"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["storage"] = "healthy"
	}

	if h.queueDepth != nil {
		depth, err := h.queueDepth(ctx)
		if err != nil {
			h.logger.Warn("Queue health check failed", "error", err)
			components["autotrack_queue"] = map[string]interface{}{"status": "unhealthy"}
			overallStatus = "degraded"
		} else {
			components["autotrack_queue"] = map[string]interface{}{"status": "healthy", "depth": depth}
		}
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "smz3-tracker",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, statusCode, response)
}
