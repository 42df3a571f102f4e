package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/board"
	"github.com/mcoot/tictactoe-go/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	controller game.ControllerInterface
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller game.ControllerInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		logger:     logger,
	}
}

// Create handles POST /api/v1/game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError(model.MsgInvalidField))
		return
	}

	side, field, err := req.Parse()
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.CreateGame(r.Context(), side, field)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/game/"+string(result.ID), response.CreateGameFromModel(result))
}

// Update handles PUT /api/v1/game/{id}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError(model.MsgInvalidField))
		return
	}

	field, err := req.Parse()
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.UpdateGame(r.Context(), id, field)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromModel(result))
}

// Get handles GET /api/v1/game/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	session, err := h.controller.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session, board.Classify(&session.Board)))
}

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
