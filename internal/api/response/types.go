package response

import (
	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// CreateGameResponse is returned when a game starts. Status is always empty.
type CreateGameResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	GameField request.GameField `json:"gameField"`
}

// MoveResponse is returned after a move
type MoveResponse struct {
	Status    string            `json:"status"`
	GameField request.GameField `json:"gameField"`
}

// GameResponse describes an active game
type GameResponse struct {
	ID         string            `json:"id"`
	PlayerSide string            `json:"playerSide"`
	Status     string            `json:"status"`
	GameField  request.GameField `json:"gameField"`
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateGameFromModel converts a creation result
func CreateGameFromModel(r *model.CreateResult) CreateGameResponse {
	return CreateGameResponse{
		ID:        string(r.ID),
		Status:    r.Status,
		GameField: request.FieldFromBoard(r.Board),
	}
}

// MoveFromModel converts a move result
func MoveFromModel(r *model.MoveResult) MoveResponse {
	return MoveResponse{
		Status:    r.Status,
		GameField: request.FieldFromBoard(r.Board),
	}
}

// GameFromModel converts a stored session with its current status
func GameFromModel(s *model.Session, status model.TerminalState) GameResponse {
	return GameResponse{
		ID:         string(s.ID),
		PlayerSide: s.Owner.String(),
		Status:     status.String(),
		GameField:  request.FieldFromBoard(s.Board),
	}
}
