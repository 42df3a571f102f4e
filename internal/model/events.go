package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated  EventType = "game_created"
	EventBoardUpdated EventType = "board_updated"
	EventGameOver     EventType = "game_over"
)

// Event describes a change to a session, published to spectators
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	Status    TerminalState
	Board     Board
}
