package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/LavinLeo/tennis-data/internal/bulk"
	"github.com/LavinLeo/tennis-data/internal/config"
	"github.com/LavinLeo/tennis-data/internal/server"
	"github.com/LavinLeo/tennis-data/internal/storage"
	"github.com/LavinLeo/tennis-data/internal/storage/memory"
	"github.com/LavinLeo/tennis-data/internal/storage/sqlite"
	"github.com/LavinLeo/tennis-data/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.Init("tennis-data", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store storage.MatchStore
	switch cfg.Storage.Type {
	case "memory":
		store = memory.New()
	case "sqlite":
		store, err = sqlite.New(cfg.Storage.SQLite.Path)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
	default:
		log.Fatalf("Unknown storage type: %q", cfg.Storage.Type)
	}
	defer store.Close()

	ttl := time.Duration(0)
	if cfg.Decode.SummaryTTL != "" {
		ttl, err = time.ParseDuration(cfg.Decode.SummaryTTL)
		if err != nil {
			log.Fatalf("Invalid decode.summary_ttl: %v", err)
		}
	}

	srv := server.New(cfg.Server.Port, logger)
	h := server.NewHandler(store, bulk.New(logger, cfg.Decode.Workers), server.NewSummaryCache(ttl), logger)
	h.Register(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("charting service started",
		slog.Int("port", cfg.Server.Port),
		slog.String("storage", cfg.Storage.Type))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-sigChan:
		logger.Info("shutdown signal received, stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("shutdown complete")
}
