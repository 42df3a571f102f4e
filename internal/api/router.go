package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/handler"
	"github.com/mcoot/tictactoe-go/internal/api/middleware"
	sharedmw "github.com/mcoot/tictactoe-go/internal/middleware"
	"github.com/mcoot/tictactoe-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(sharedmw.Logging(cfg.Logger))
	api.Use(sharedmw.Metrics())

	api.HandleFunc("/game", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/game/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/{id}", gameHandler.Update).Methods(http.MethodPut)

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	return r
}
