package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/smz3-tracker/internal/config"
	"github.com/jwebster45206/smz3-tracker/internal/handlers"
	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/internal/middleware"
	"github.com/jwebster45206/smz3-tracker/internal/services/events"
	"github.com/jwebster45206/smz3-tracker/internal/services/queue"
	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/internal/storage"
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

	log.Info("Starting SMZ3 Tracker API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"search_budget", cfg.SearchBudget)

	defaults := settings.Default()
	if cfg.WorldSettings != "" {
		defaults, err = settings.LoadFromPath(cfg.WorldSettings)
		if err != nil {
			log.Error("Failed to load world settings", "path", cfg.WorldSettings, "error", err)
			os.Exit(1)
		}
		log.Info("Loaded world settings", "path", cfg.WorldSettings, "keysanity", defaults.Keysanity.String())
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SessionTTL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	autoTrack := queue.NewAutoTrackQueue(queueClient, log)
	broadcaster := events.NewBroadcaster(store.Client(), log)

	mgr := sessions.NewManager(store, log,
		sessions.WithDefaults(defaults),
		sessions.WithPublisher(broadcaster),
		sessions.WithLocker(sessions.NewRedisLocker(store.Client(), 30*time.Second, log)),
		sessions.WithTrackerOptions(tracker.WithSearchOptions(search.Options{MaxProbes: cfg.SearchBudget})),
	)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, autoTrack.Depth, log))

	sessionsHandler := handlers.NewSessionsHandler(mgr, autoTrack, broadcaster, log)
	mux.Handle("/v1/sessions", sessionsHandler)
	mux.Handle("/v1/sessions/", sessionsHandler)

	presetsHandler := handlers.NewPresetsHandler(mgr, log)
	mux.Handle("/v1/presets", presetsHandler)
	mux.Handle("/v1/presets/", presetsHandler)

	mux.Handle("/v1/events/sessions/", handlers.NewEventsHandler(store.Client(), log))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(log, mux),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the events endpoint streams indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := queueClient.Close(); err != nil {
		log.Error("Error closing queue client", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
