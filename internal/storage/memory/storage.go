package memory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Sessions are stored by value so callers never share a board with the store.
type Storage struct {
	sessions *xsync.MapOf[model.SessionID, model.Session]
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: xsync.NewMapOf[model.SessionID, model.Session](),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.sessions.Store(session.ID, *session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, ok := s.sessions.Load(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, ok := s.sessions.LoadAndDelete(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

// Len returns the number of stored sessions
func (s *Storage) Len() int {
	return s.sessions.Size()
}
