package model

import "time"

// SessionID uniquely identifies an active game
type SessionID string

// Session is one in-progress game against the engine
type Session struct {
	ID    SessionID
	Owner Side // the human player's side, fixed at creation
	Board Board

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EngineSide returns the side the engine plays
func (s *Session) EngineSide() Side {
	return s.Owner.Opponent()
}

// MoveResult is the outcome of a turn
type MoveResult struct {
	Status string // empty after creation, otherwise a TerminalState name
	Board  Board
}

// CreateResult is the outcome of starting a game
type CreateResult struct {
	ID SessionID
	MoveResult
}
