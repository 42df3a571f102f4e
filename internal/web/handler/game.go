package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/board"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// GameHandler serves the spectator page and its event stream
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	session, ok := h.load(w, r, id)
	if !ok {
		return
	}

	view := pages.GameView{
		ID:         session.ID,
		PlayerSide: session.Owner,
		Board:      session.Board,
		Status:     board.Classify(&session.Board),
	}
	render(w, r, http.StatusOK, "Game "+string(id), pages.Game(view))
}

// Events streams board-update and game-over events for a game
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load game for event stream",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The game may have finished since it was loaded
	hub := h.hubManager.GetOrCreateHub(id)
	if hub == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	sse.ServeSSE(w, r, hub)
}

func (h *GameHandler) load(w http.ResponseWriter, r *http.Request, id model.SessionID) (*model.Session, bool) {
	session, err := h.gameController.GetGame(r.Context(), id)
	if err == nil {
		return session, true
	}

	if errors.Is(err, model.ErrSessionNotFound) {
		render(w, r, http.StatusNotFound, "Game not found", pages.NotFound(id))
		return nil, false
	}

	h.logger.Error("failed to load game",
		slog.String("game_id", string(id)),
		slog.String("error", err.Error()))
	render(w, r, http.StatusInternalServerError, "Error", pages.Error("The game could not be loaded."))
	return nil, false
}
