package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/api/apierr"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         app.Logger,
		GameController: app.GameController,
	})

	return &testServer{
		handler: router,
		app:     app,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func requireAPIError(t *testing.T, rr *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	body := decode[apierr.APIError](t, rr)
	assert.Equal(t, code, body.Code)
	assert.Equal(t, message, body.Message)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCreateGameAsX(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/game", map[string]any{
		"playerSide": "X",
		"gameField":  [][]string{{"X", " ", " "}, {" ", " ", " "}, {" ", " ", " "}},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decode[response.CreateGameResponse](t, rr)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "/api/v1/game/"+resp.ID, rr.Header().Get("Location"))
	assert.Equal(t, [][]string{{"X", " ", " "}, {" ", "O", " "}, {" ", " ", " "}}, [][]string(resp.GameField))

	// status is present and empty
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "status")
	assert.Equal(t, "", raw["status"])
	assert.Equal(t, 1, ts.storage.Len())
}

func TestCreateGameAsO(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueIntn(8)

	rr := ts.request(http.MethodPost, "/api/v1/game", map[string]any{
		"playerSide": "O",
		"gameField":  [][]string{{" ", " ", " "}, {" ", " ", " "}, {" ", " ", " "}},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decode[response.CreateGameResponse](t, rr)
	assert.Equal(t, [][]string{{" ", " ", " "}, {" ", " ", " "}, {" ", " ", "X"}}, [][]string(resp.GameField))
}

func TestCreateGameValidation(t *testing.T) {
	empty := [][]string{{" ", " ", " "}, {" ", " ", " "}, {" ", " ", " "}}

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{
			name:    "invalid side",
			body:    map[string]any{"playerSide": "E", "gameField": [][]string{{"X", "X", "X"}, {"X", "X", "X"}, {"X", "X", "X"}}},
			message: model.MsgInvalidSide,
		},
		{
			name:    "missing side",
			body:    map[string]any{"gameField": empty},
			message: model.MsgInvalidSide,
		},
		{
			name:    "not 3x3",
			body:    map[string]any{"playerSide": "X", "gameField": [][]string{{"X", " "}, {" ", " "}}},
			message: model.MsgInvalidField,
		},
		{
			name:    "unknown cell",
			body:    map[string]any{"playerSide": "X", "gameField": [][]string{{"Q", " ", " "}, {" ", " ", " "}, {" ", " ", " "}}},
			message: model.MsgInvalidField,
		},
		{
			name:    "opposite mark on field",
			body:    map[string]any{"playerSide": "X", "gameField": [][]string{{"X", "O", " "}, {" ", " ", " "}, {" ", " ", " "}}},
			message: model.MsgInvalidField,
		},
		{
			name:    "player O with marks",
			body:    map[string]any{"playerSide": "O", "gameField": [][]string{{"O", " ", " "}, {" ", " ", " "}, {" ", " ", " "}}},
			message: model.MsgSideOFieldNotEmpty,
		},
		{
			name:    "player X with empty field",
			body:    map[string]any{"playerSide": "X", "gameField": empty},
			message: model.MsgSideXNeedsOneX,
		},
		{
			name:    "malformed json",
			body:    `{"playerSide": "X", "gameField": [[`,
			message: model.MsgInvalidField,
		},
		{
			name:    "numbers in field",
			body:    `{"playerSide": "X", "gameField": [[1,2,3],[4,5,6],[7,8,9]]}`,
			message: model.MsgInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			rr := ts.request(http.MethodPost, "/api/v1/game", tt.body)
			requireAPIError(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest, tt.message)
			assert.Equal(t, 0, ts.storage.Len())
		})
	}
}

func createGame(t *testing.T, ts *testServer, side string, field [][]string) response.CreateGameResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/game", map[string]any{"playerSide": side, "gameField": field})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.CreateGameResponse](t, rr)
}

func TestUpdateGame(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueIntn(0)
	created := createGame(t, ts, "O", [][]string{{" ", " ", " "}, {" ", " ", " "}, {" ", " ", " "}})

	rr := ts.request(http.MethodPut, "/api/v1/game/"+created.ID, map[string]any{
		"gameField": [][]string{{"X", " ", " "}, {" ", "O", " "}, {" ", " ", " "}},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[response.MoveResponse](t, rr)
	assert.Equal(t, "CONTINUE", resp.Status)
	b := resp.GameField.Board()
	assert.Equal(t, 2, b.Count(model.X))
	assert.Equal(t, 1, b.Count(model.O))
}

func TestUpdateGameInvalidMove(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "X", [][]string{{"X", " ", " "}, {" ", " ", " "}, {" ", " ", " "}})

	tests := []struct {
		name  string
		field [][]string
	}{
		{"no change", created.GameField},
		{"engine mark removed", [][]string{{"X", " ", " "}, {" ", " ", " "}, {" ", " ", " "}}},
		{"two marks", [][]string{{"X", "X", "X"}, {" ", "O", " "}, {" ", " ", " "}}},
		{"opponent mark", [][]string{{"X", "O", " "}, {" ", "O", " "}, {" ", " ", " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPut, "/api/v1/game/"+created.ID, map[string]any{"gameField": tt.field})
			requireAPIError(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest, model.MsgInvalidMove)
		})
	}
}

func TestUpdateGameMalformedField(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "X", [][]string{{"X", " ", " "}, {" ", " ", " "}, {" ", " ", " "}})

	rr := ts.request(http.MethodPut, "/api/v1/game/"+created.ID, map[string]any{"gameField": [][]string{{"X"}}})
	requireAPIError(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest, model.MsgInvalidField)
}

func TestUpdateGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/game/missing", map[string]any{
		"gameField": [][]string{{"X", " ", " "}, {" ", " ", " "}, {" ", " ", " "}},
	})
	requireAPIError(t, rr, http.StatusNotFound, apierr.CodeGameNotFound, "Game not found")
}

func TestUpdateGamePlayerWins(t *testing.T) {
	ts := newTestServer(t)
	session := &model.Session{ID: "near-win", Owner: model.SideX, Board: model.MustParseBoard("XX./OO./...")}
	require.NoError(t, ts.storage.SaveSession(t.Context(), session))

	rr := ts.request(http.MethodPut, "/api/v1/game/near-win", map[string]any{
		"gameField": [][]string{{"X", "X", "X"}, {"O", "O", " "}, {" ", " ", " "}},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[response.MoveResponse](t, rr)
	assert.Equal(t, "X_WON", resp.Status)
	assert.Equal(t, [][]string{{"X", "X", "X"}, {"O", "O", " "}, {" ", " ", " "}}, [][]string(resp.GameField))
	assert.Equal(t, 0, ts.storage.Len())
}

func TestGetGame(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, "X", [][]string{{" ", " ", " "}, {" ", "X", " "}, {" ", " ", " "}})

	rr := ts.request(http.MethodGet, "/api/v1/game/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.GameResponse](t, rr)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "X", resp.PlayerSide)
	assert.Equal(t, "CONTINUE", resp.Status)
	assert.Equal(t, created.GameField, resp.GameField)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/missing", nil)
	requireAPIError(t, rr, http.StatusNotFound, apierr.CodeGameNotFound, "Game not found")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nope", nil)
	requireAPIError(t, rr, http.StatusNotFound, apierr.CodeNotFound, "Not found")
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/api/v1/game/abc", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestConcurrentUpdatesOneWins(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueIntn(0)
	created := createGame(t, ts, "O", [][]string{{" ", " ", " "}, {" ", " ", " "}, {" ", " ", " "}})

	body := `{"gameField": [["X"," "," "],[" ","O"," "],[" "," "," "]]}`

	const attempts = 10
	codes := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/game/"+created.ID, strings.NewReader(body))
			rr := httptest.NewRecorder()
			ts.handler.ServeHTTP(rr, req)
			codes <- rr.Code
		}()
	}
	wg.Wait()
	close(codes)

	ok := 0
	for code := range codes {
		if code == http.StatusOK {
			ok++
		} else {
			assert.Equal(t, http.StatusBadRequest, code)
		}
	}
	assert.Equal(t, 1, ok)
}
