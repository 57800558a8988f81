package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mcoot/pokerclub/internal/api"
	"github.com/mcoot/pokerclub/internal/factory"
	redisstorage "github.com/mcoot/pokerclub/internal/storage/redis"
)

func main() {
	// A missing .env file is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", slog.String("error", err.Error()))
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run serves until a shutdown signal or a server error. Deferred cleanup
// such as closing the store runs on every return path.
func run(logger *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		Registry:    registry,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if prefix := os.Getenv("REDIS_KEY_PREFIX"); prefix != "" {
			redisCfg.KeyPrefix = prefix
		}
		cfg.RedisConfig = &redisCfg
	}

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		serverConfig.Port = p
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	if closer, ok := app.Storage.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("closing storage failed", slog.String("error", err.Error()))
			}
		}()
	}

	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set, changes are not password protected")
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:               logger,
		Metrics:              app.Metrics,
		TournamentController: app.TournamentController,
		PlayerService:        app.PlayerService,
		MeetingService:       app.MeetingService,
		LeaderboardService:   app.LeaderboardService,
		AdminPasswordHash:    adminHash,
		Gatherer:             registry,
	})
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", app.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
