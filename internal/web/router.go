package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	sharedmw "github.com/mcoot/tictactoe-go/internal/middleware"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/web/handler"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	HubManager     *sse.HubManager
}

// NewRouter creates the router for the spectator pages
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(sharedmw.Metrics())

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler()
	gameHandler := handler.NewGameHandler(cfg.GameController, hubManager, cfg.Logger)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/games", homeHandler.Find).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	return r
}
