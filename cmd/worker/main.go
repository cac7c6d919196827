package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/smz3-tracker/internal/config"
	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/internal/services/events"
	"github.com/jwebster45206/smz3-tracker/internal/services/queue"
	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/internal/storage"
	"github.com/jwebster45206/smz3-tracker/internal/worker"
	"github.com/jwebster45206/smz3-tracker/pkg/search"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting SMZ3 Tracker Worker",
		"environment", cfg.Environment,
		"redis_url", cfg.RedisURL)

	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing queue client", "error", err)
		}
	}()
	autoTrack := queue.NewAutoTrackQueue(queueClient, log)
	log.Info("Queue service initialized successfully")

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SessionTTL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing storage", "error", err)
		}
	}()
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage service initialized successfully")

	defaults := settings.Default()
	if cfg.WorldSettings != "" {
		if defaults, err = settings.LoadFromPath(cfg.WorldSettings); err != nil {
			log.Error("Failed to load world settings", "path", cfg.WorldSettings, "error", err)
			os.Exit(1)
		}
	}

	broadcaster := events.NewBroadcaster(queueClient.GetRedisClient(), log)
	// A busy session goes back on the queue instead of blocking this worker.
	mgr := sessions.NewManager(store, log,
		sessions.WithDefaults(defaults),
		sessions.WithPublisher(broadcaster),
		sessions.WithLocker(sessions.NewRedisLocker(queueClient.GetRedisClient(), 30*time.Second, log)),
		sessions.WithLockWait(0),
		sessions.WithTrackerOptions(tracker.WithSearchOptions(search.Options{MaxProbes: cfg.SearchBudget})),
	)

	w := worker.New(autoTrack, mgr, broadcaster, log, cfg.WorkerID)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() { done <- w.Start() }()

	log.Info("Worker started, waiting for requests...", "worker_id", w.ID())

	select {
	case <-quit:
		log.Info("Worker shutdown signal received")
		w.Stop()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			log.Warn("Worker did not stop in time")
		}
	case err := <-done:
		if err != nil {
			log.Error("Worker error", "error", err)
			os.Exit(1)
		}
	}

	log.Info("Worker exited")
}
