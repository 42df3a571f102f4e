package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newSession(id string) *model.Session {
	return &model.Session{
		ID:        model.SessionID(id),
		Owner:     model.SideO,
		Board:     model.MustParseBoard("X../.O./..."),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("game-1")

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Owner, retrieved.Owner)
	s.Equal(session.Board, retrieved.Board)
	s.True(session.CreatedAt.Equal(retrieved.CreatedAt))
	s.True(session.UpdatedAt.Equal(retrieved.UpdatedAt))
}

func (s *StorageSuite) TestSessionStoredAsReadableJSON() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("game-1")))

	raw, err := s.mini.Get("tictactoe:session:game-1")
	s.Require().NoError(err)
	s.Contains(raw, `"Owner":"O"`)
	s.Contains(raw, `"Board":[["X"," "," "],[" ","O"," "],[" "," "," "]]`)
}

func (s *StorageSuite) TestSaveAppliesTTL() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("game-1")))
	s.Equal(time.Hour, s.mini.TTL("tictactoe:session:game-1"))

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetSession(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := s.newSession("game-1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	removed, err := s.storage.DeleteSession(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(session.Board, removed.Board)
	s.False(s.mini.Exists("tictactoe:session:game-1"))

	_, err = s.storage.DeleteSession(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestCorruptValueSurfacesError() {
	s.Require().NoError(s.mini.Set("tictactoe:session:bad", "{not json"))

	_, err := s.storage.GetSession(s.ctx, "bad")
	s.Error(err)
	s.NotErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"
	_, err := New(cfg)
	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()
	store, err := New(cfg)
	s.Require().NoError(err)
	s.NoError(store.Close())
}
