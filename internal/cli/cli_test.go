package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/cli"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// CLISuite runs the commands in-process against a test server
type CLISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(s.app.Handler())
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
	s.Require().NoError(s.app.Close())
}

func (s *CLISuite) run(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--server", s.server.URL}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func (s *CLISuite) runJSON(result any, args ...string) {
	out, err := s.run(context.Background(), append([]string{"-o", "json"}, args...)...)
	s.Require().NoError(err, "output: %s", out)
	s.Require().NoError(json.Unmarshal([]byte(out), result), "output: %s", out)
}

func (s *CLISuite) seed(id model.SessionID, owner model.Side, layout string) {
	s.Require().NoError(s.app.Storage.SaveSession(context.Background(), &model.Session{
		ID:    id,
		Owner: owner,
		Board: model.MustParseBoard(layout),
	}))
}

func (s *CLISuite) TestHealth() {
	out, err := s.run(context.Background(), "health")
	s.Require().NoError(err)
	s.Contains(out, "Status: ok")

	var health response.HealthResponse
	s.runJSON(&health, "health")
	s.Equal("ok", health.Status)
}

func (s *CLISuite) TestCreateAsX() {
	var created response.CreateGameResponse
	s.runJSON(&created, "game", "create", "--side", "X", "--field", "X........")

	s.NotEmpty(created.ID)
	s.Empty(created.Status)
	s.Equal("X", created.GameField[0][0])
	s.Equal("O", created.GameField[1][1])
}

func (s *CLISuite) TestCreateAsO() {
	var created response.CreateGameResponse
	s.runJSON(&created, "game", "create", "--side", "o")

	s.NotEmpty(created.ID)
	s.Equal("X", created.GameField[0][0])
}

func (s *CLISuite) TestCreateTextOutput() {
	out, err := s.run(context.Background(), "game", "create", "--field", "X../.../...")
	s.Require().NoError(err)
	s.Contains(out, "Game: ")
	s.Contains(out, " 1 | .  O  . |")
}

func (s *CLISuite) TestCreateRejected() {
	_, err := s.run(context.Background(), "game", "create", "--side", "X", "--field", ".........")
	s.Require().Error(err)

	var apiErr *cli.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.Equal("INVALID_REQUEST", apiErr.Code)
	s.Equal(model.MsgSideXNeedsOneX, apiErr.Message)
}

func (s *CLISuite) TestCreateMalformedField() {
	_, err := s.run(context.Background(), "game", "create", "--field", "X..")
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid field")
}

func (s *CLISuite) TestGet() {
	s.seed("g1", model.SideX, "X../.O./...")

	var game response.GameResponse
	s.runJSON(&game, "game", "get", "g1")

	s.Equal("g1", game.ID)
	s.Equal("X", game.PlayerSide)
	s.Equal("CONTINUE", game.Status)
}

func (s *CLISuite) TestGetNotFound() {
	_, err := s.run(context.Background(), "game", "get", "missing")

	var apiErr *cli.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("GAME_NOT_FOUND", apiErr.Code)
}

func (s *CLISuite) TestUpdate() {
	s.seed("g1", model.SideX, "X../.O./...")

	var moved response.MoveResponse
	s.runJSON(&moved, "game", "update", "g1", "--field", "XX./.O./...")

	s.Equal("CONTINUE", moved.Status)
	s.Equal("O", moved.GameField[0][2])
}

func (s *CLISuite) TestUpdateRequiresField() {
	_, err := s.run(context.Background(), "game", "update", "g1")
	s.Require().Error(err)
}

func (s *CLISuite) TestMove() {
	s.seed("g1", model.SideX, "X../.O./...")

	var moved response.MoveResponse
	s.runJSON(&moved, "game", "move", "g1", "0", "1")

	s.Equal("X", moved.GameField[0][1])
	s.Equal("O", moved.GameField[0][2])
}

func (s *CLISuite) TestMoveWins() {
	s.seed("g1", model.SideX, "XX./OO./...")

	var moved response.MoveResponse
	s.runJSON(&moved, "game", "move", "g1", "0", "2")

	s.Equal("X_WON", moved.Status)
	_, err := s.run(context.Background(), "game", "get", "g1")
	s.Error(err)
}

func (s *CLISuite) TestMoveOntoTakenCell() {
	s.seed("g1", model.SideX, "X../.O./...")

	_, err := s.run(context.Background(), "game", "move", "g1", "1", "1")
	s.Require().Error(err)
	s.Contains(err.Error(), "already taken")
}

func (s *CLISuite) TestMoveOutOfRange() {
	_, err := s.run(context.Background(), "game", "move", "g1", "3", "0")
	s.Require().Error(err)
	s.Contains(err.Error(), "row must be between 0 and 2")
}

func (s *CLISuite) TestUnknownOutputFormat() {
	_, err := s.run(context.Background(), "-o", "yaml", "health")
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown output format")
}

func (s *CLISuite) TestWatchNotFound() {
	_, err := s.run(context.Background(), "game", "watch", "missing")
	s.Require().Error(err)
	s.Contains(err.Error(), "not found")
}

func (s *CLISuite) TestWatchFollowsGameToTheEnd() {
	s.seed("g1", model.SideX, "XX./OO./...")

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := s.run(context.Background(), "game", "watch", "g1")
		done <- result{out, err}
	}()

	s.Require().Eventually(func() bool {
		hub := s.app.HubManager.GetHub("g1")
		return hub != nil && hub.ClientCount() > 0
	}, 5*time.Second, 10*time.Millisecond)

	_, err := s.app.GameController.UpdateGame(context.Background(), "g1", model.MustParseBoard("XXX/OO./..."))
	s.Require().NoError(err)

	select {
	case r := <-done:
		s.Require().NoError(r.err)
		s.Contains(r.out, "Watching game g1")
		s.Contains(r.out, "X won")
		s.Contains(r.out, "XXX\n")
		s.Contains(r.out, "game over: X_WON")
	case <-time.After(5 * time.Second):
		s.Fail("watch did not return after game over")
	}
}

func (s *CLISuite) TestWatchStopsOnCancel() {
	s.seed("g1", model.SideX, "X../.O./...")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.run(ctx, "-o", "json", "game", "watch", "g1")
		done <- err
	}()

	s.Require().Eventually(func() bool {
		hub := s.app.HubManager.GetHub("g1")
		return hub != nil && hub.ClientCount() > 0
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("watch did not stop on cancel")
	}
}
