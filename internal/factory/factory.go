package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/metrics"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/storage"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	redisstorage "github.com/mcoot/tictactoe-go/internal/storage/redis"
	"github.com/mcoot/tictactoe-go/internal/web"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Engine move pickers
	Opener bot.Strategy
	Solver bot.Strategy

	// Services
	GameController *game.Controller
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster

	Logger *slog.Logger
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
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("redis storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	opener := bot.NewRandomStrategy(rnd)
	solver := bot.NewMinimax()
	gameController := game.NewController(store, opener, solver, clk, broadcaster, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Opener:         opener,
		Solver:         solver,
		GameController: gameController,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
		Logger:         logger,
	}
}

var _ game.Notifier = (*sse.Broadcaster)(nil)

// Handler combines the JSON API, the metrics endpoint and the spectator pages
func (a *App) Handler() http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         a.Logger,
		GameController: a.GameController,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         a.Logger,
		GameController: a.GameController,
		HubManager:     a.HubManager,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", webRouter)
	return mux
}

// Close ends open event streams and releases the storage connection
func (a *App) Close() error {
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
