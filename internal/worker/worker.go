package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/services/events"
	"github.com/jwebster45206/smz3-tracker/internal/services/queue"
	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

const (
	workerTimeout = 5 * time.Second
	busyBackoff   = 100 * time.Millisecond
)

// Worker drains the auto-track queue, applying each request to its
// session.
type Worker struct {
	id          string
	queue       *queue.AutoTrackQueue
	sessions    *sessions.Manager
	broadcaster *events.Broadcaster
	log         *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a new worker instance. The manager should be built with
// WithLockWait(0) so a busy session is requeued rather than waited on.
func New(q *queue.AutoTrackQueue, mgr *sessions.Manager, broadcaster *events.Broadcaster, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:          workerID,
		queue:       q,
		sessions:    mgr,
		broadcaster: broadcaster,
		log:         log.With("worker_id", workerID),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// ID returns the worker's name.
func (w *Worker) ID() string { return w.id }

// Start processes requests until Stop is called.
func (w *Worker) Start() error {
	w.log.Info("Worker starting")

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down")
			return nil
		default:
			if err := w.processNextRequest(); err != nil {
				if w.ctx.Err() != nil {
					continue
				}
				w.log.Error("Error processing request", "error", err)
				time.Sleep(1 * time.Second)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested")
	w.cancel()
}

// processNextRequest pulls the next request from the queue and processes it
func (w *Worker) processNextRequest() error {
	req, err := w.queue.BlockingDequeueRequest(w.ctx, workerTimeout)
	if err != nil {
		return fmt.Errorf("failed to dequeue request: %w", err)
	}
	if req == nil {
		return nil
	}
	return w.processRequest(req)
}

// processRequest applies req. Rejected requests are reported on the
// session's channel and dropped; a busy session puts req back at the head
// of the queue.
func (w *Worker) processRequest(req *queuePkg.Request) error {
	log := w.log.With(
		"request_id", req.RequestID,
		"type", req.Type,
		"session_id", req.SessionID.String(),
	)
	start := time.Now()

	var changes []world.Change
	_, err := w.sessions.Update(w.ctx, req.SessionID, func(tr *tracker.Tracker) error {
		c, err := Apply(tr, req)
		changes = c
		return err
	})

	switch {
	case errors.Is(err, sessions.ErrSessionBusy):
		log.Info("Session locked, re-queueing request")
		if err := w.queue.RequeueRequest(w.ctx, req); err != nil {
			return fmt.Errorf("failed to re-queue request: %w", err)
		}
		select {
		case <-w.ctx.Done():
		case <-time.After(busyBackoff):
		}
		return nil

	case err != nil:
		log.Warn("Auto-track request rejected", "error", err)
		if pubErr := w.broadcaster.PublishAutoTrackFailed(w.ctx, req.SessionID, req.RequestID, err.Error()); pubErr != nil {
			log.Error("Failed to publish failure event", "error", pubErr)
		}
		return nil
	}

	if err := w.queue.RecordApplied(w.ctx, req); err != nil {
		log.Error("Failed to record applied request", "error", err)
	}
	if err := w.broadcaster.PublishAutoTrackApplied(w.ctx, req.SessionID, req.RequestID, len(changes)); err != nil {
		log.Error("Failed to publish applied event", "error", err)
	}

	log.Info("Auto-track request applied",
		"changed", len(changes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
