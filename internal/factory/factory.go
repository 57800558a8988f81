package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/pokerclub/internal/dependencies/clock"
	"github.com/mcoot/pokerclub/internal/dependencies/ids"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/services/leaderboard"
	"github.com/mcoot/pokerclub/internal/services/meeting"
	"github.com/mcoot/pokerclub/internal/services/player"
	"github.com/mcoot/pokerclub/internal/services/settlement"
	"github.com/mcoot/pokerclub/internal/services/tournament"
	"github.com/mcoot/pokerclub/internal/storage"
	"github.com/mcoot/pokerclub/internal/storage/memory"
	redisstorage "github.com/mcoot/pokerclub/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Metrics
	Metrics *metrics.Recorder

	// Services
	SettlementEngine     *settlement.Engine
	TournamentController *tournament.Controller
	PlayerService        *player.Service
	MeetingService       *meeting.Service
	LeaderboardService   *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Registry receives the service's Prometheus collectors (optional)
	// If nil, a private registry is used
	Registry prometheus.Registerer
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	app := newWithDependencies(store, clock.New(), ids.New(), metrics.New(registry), logger)
	app.StorageType = storageType
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	idGen ids.Generator,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *App {
	engine := settlement.NewEngine(logger, recorder)

	return &App{
		Storage:              store,
		Clock:                clk,
		IDs:                  idGen,
		Metrics:              recorder,
		SettlementEngine:     engine,
		TournamentController: tournament.NewController(store, engine, clk, idGen, logger, recorder),
		PlayerService:        player.New(store, clk, logger, recorder),
		MeetingService:       meeting.New(store, clk, idGen, logger, recorder),
		LeaderboardService:   leaderboard.New(store, clk, logger, recorder),
	}
}
