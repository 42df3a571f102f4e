package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
)

// Event names sent to spectators
const (
	EventBoardUpdate = "board-update"
	EventGameOver    = "game-over"
)

// Broadcaster renders game events and sends them to the game's spectators
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends an event to the game's spectators, if any are watching.
// A game-over event also closes the game's hub once delivered.
func (b *Broadcaster) Publish(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.SessionID)
	if hub == nil {
		return
	}

	switch event.Type {
	case model.EventBoardUpdated:
		b.broadcastBoard(ctx, hub, event)

	case model.EventGameOver:
		b.broadcastBoard(ctx, hub, event)
		hub.BroadcastEvent(EventGameOver, event.Status.String())
		b.hubManager.RemoveHub(event.SessionID)
	}
}

func (b *Broadcaster) broadcastBoard(ctx context.Context, hub *Hub, event model.Event) {
	html, err := RenderBoard(ctx, event.Board, event.Status)
	if err != nil {
		b.logger.Error("sse failed to render board",
			slog.String("game_id", string(event.SessionID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventBoardUpdate, html)
}

// RenderBoard renders the board and status fragment swapped into the page
func RenderBoard(ctx context.Context, board model.Board, status model.TerminalState) (string, error) {
	var buf bytes.Buffer
	if err := components.Board(board).Render(ctx, &buf); err != nil {
		return "", err
	}
	if err := components.Status(status).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
