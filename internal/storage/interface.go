package storage

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Storage persists active game sessions, at most one per id.
// Implementations must be safe for concurrent use.
type Storage interface {
	// SaveSession inserts or replaces the session stored under session.ID
	SaveSession(ctx context.Context, session *model.Session) error

	// GetSession returns a copy of the stored session, or model.ErrSessionNotFound
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)

	// DeleteSession removes the session and returns what was stored,
	// or model.ErrSessionNotFound if nothing was
	DeleteSession(ctx context.Context, id model.SessionID) (*model.Session, error)
}
