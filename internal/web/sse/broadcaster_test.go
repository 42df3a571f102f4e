package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

func watch(t *testing.T, manager *HubManager, id model.SessionID) *Client {
	t.Helper()
	hub := manager.GetOrCreateHub(id)
	client := NewClient(hub)
	hub.Register(client)
	return client
}

func TestRenderBoard(t *testing.T) {
	html, err := RenderBoard(context.Background(), model.MustParseBoard("X.O/.X./..O"), model.Continue)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	cells := doc.Find("#board td.cell")
	assert.Equal(t, 9, cells.Length())
	assert.Equal(t, "X", cells.Eq(0).Text())
	assert.Equal(t, "O", cells.Eq(2).Text())
	assert.True(t, cells.Eq(4).HasClass("cell-x"))
	assert.True(t, cells.Eq(1).HasClass("cell-empty"))

	row, _ := cells.Eq(5).Attr("data-row")
	col, _ := cells.Eq(5).Attr("data-col")
	assert.Equal(t, "1", row)
	assert.Equal(t, "2", col)

	assert.Equal(t, "In progress", doc.Find("#game-status").Text())
}

func TestBroadcaster_BoardUpdated(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	client := watch(t, manager, "game-1")

	broadcaster.Publish(context.Background(), model.Event{
		Type:      model.EventBoardUpdated,
		Timestamp: time.Now(),
		SessionID: "game-1",
		Status:    model.Continue,
		Board:     model.MustParseBoard("X../.O./..."),
	})

	msg := receive(t, client)
	assert.True(t, strings.HasPrefix(msg, "event: board-update\n"))
	assert.Contains(t, msg, `id="board"`)
	assert.NotNil(t, manager.GetHub("game-1"), "hub stays open while the game continues")
}

func TestBroadcaster_GameOverClosesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	client := watch(t, manager, "game-1")

	broadcaster.Publish(context.Background(), model.Event{
		Type:      model.EventGameOver,
		SessionID: "game-1",
		Status:    model.XWon,
		Board:     model.MustParseBoard("XXX/OO./..."),
	})

	board := receive(t, client)
	assert.Contains(t, board, "event: board-update")
	assert.Contains(t, board, "X won")

	assert.Equal(t, "event: game-over\ndata: X_WON\n\n", receive(t, client))

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "stream ends after game-over")
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}
	assert.Nil(t, manager.GetHub("game-1"))
}

func TestBroadcaster_IgnoresCreatedEvents(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	client := watch(t, manager, "game-1")

	broadcaster.Publish(context.Background(), model.Event{Type: model.EventGameCreated, SessionID: "game-1"})

	select {
	case msg := <-client.send:
		t.Fatalf("unexpected message %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcaster_NoHubDoesNotPanic(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	assert.NotPanics(t, func() {
		broadcaster.Publish(context.Background(), model.Event{
			Type:      model.EventGameOver,
			SessionID: "nobody-watching",
			Status:    model.Draw,
		})
	})
	assert.Nil(t, manager.GetHub("nobody-watching"))
}
