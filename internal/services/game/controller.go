package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/metrics"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/board"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Notifier receives session events. Publish must not block.
type Notifier interface {
	Publish(ctx context.Context, event model.Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, model.Event) {}

// Controller runs the game lifecycle: creation, move validation, the engine's
// reply and termination. Updates to the same session are serialized.
type Controller struct {
	storage  storage.Storage
	opener   bot.Strategy
	solver   bot.Strategy
	clock    clock.Clock
	notifier Notifier
	logger   *slog.Logger

	locks *xsync.MapOf[model.SessionID, *sync.Mutex]
}

// NewController creates a new game Controller. opener picks the engine's
// first move when the player chose O; solver picks every other engine move.
// notifier may be nil.
func NewController(
	storage storage.Storage,
	opener bot.Strategy,
	solver bot.Strategy,
	clock clock.Clock,
	notifier Notifier,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Controller{
		storage:  storage,
		opener:   opener,
		solver:   solver,
		clock:    clock,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "game-controller")),
		locks:    xsync.NewMapOf[model.SessionID, *sync.Mutex](),
	}
}

// CreateGame validates the player's starting board, lets the engine move and
// stores the new session. The returned status is always empty.
func (c *Controller) CreateGame(ctx context.Context, side model.Side, field model.Board) (*model.CreateResult, error) {
	if err := board.ValidateInitial(side, &field); err != nil {
		c.logger.Info("game creation rejected",
			slog.String("side", side.String()),
			slog.String("reason", err.Error()),
		)
		return nil, err
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:        model.SessionID(uuid.NewString()),
		Owner:     side,
		Board:     field,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if side == model.SideO {
		if pos := c.opener.ChooseMove(&session.Board, model.SideX); pos.IsValid() {
			session.Board.Set(pos.Row, pos.Col, model.X)
		}
		if err := c.save(ctx, session); err != nil {
			return nil, err
		}
	} else if err := c.NextMove(ctx, session); err != nil {
		return nil, err
	}

	metrics.GameCreated(side.String())
	c.logger.Info("game created",
		slog.String("game_id", string(session.ID)),
		slog.String("side", side.String()),
		slog.String("board", session.Board.String()),
	)
	c.notifier.Publish(ctx, model.Event{
		Type:      model.EventGameCreated,
		Timestamp: now,
		SessionID: session.ID,
		Status:    model.Continue,
		Board:     session.Board,
	})

	return &model.CreateResult{
		ID:         session.ID,
		MoveResult: model.MoveResult{Status: "", Board: session.Board},
	}, nil
}

// GetGame returns the stored session
func (c *Controller) GetGame(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// UpdateGame applies the player's move, lets the engine reply and ends the
// game if it is over. Concurrent updates to one id run one at a time.
func (c *Controller) UpdateGame(ctx context.Context, id model.SessionID, field model.Board) (*model.MoveResult, error) {
	mu := c.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := c.ValidateAndMerge(ctx, id, field)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			metrics.MoveSubmitted(metrics.MoveRejected)
			c.logger.Info("move rejected",
				slog.String("game_id", string(id)),
				slog.String("reason", err.Error()),
			)
		case errors.Is(err, model.ErrSessionNotFound):
			c.locks.Delete(id)
		}
		return nil, err
	}
	metrics.MoveSubmitted(metrics.MoveAccepted)

	if err := c.NextMove(ctx, session); err != nil {
		return nil, err
	}

	result, err := c.CheckTerminal(ctx, session)
	if err != nil {
		return nil, err
	}

	if result.Status == model.Continue.String() {
		c.notifier.Publish(ctx, model.Event{
			Type:      model.EventBoardUpdated,
			Timestamp: session.UpdatedAt,
			SessionID: session.ID,
			Status:    model.Continue,
			Board:     session.Board,
		})
	}
	return result, nil
}

// ValidateAndMerge loads the session and merges the single cell the player
// filled in. The merged session is not saved.
func (c *Controller) ValidateAndMerge(ctx context.Context, id model.SessionID, field model.Board) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	move, err := board.FindMove(&session.Board, &field, session.Owner)
	if err != nil {
		return nil, err
	}
	board.Merge(&session.Board, move, session.Owner)

	c.logger.Debug("move accepted",
		slog.String("game_id", string(id)),
		slog.Int("row", move.Row),
		slog.Int("col", move.Col),
	)
	return session, nil
}

// NextMove plays the engine's reply and saves the session. A finished or full
// board gets no reply but is still saved.
func (c *Controller) NextMove(ctx context.Context, session *model.Session) error {
	side := session.EngineSide()

	move := model.NoMove
	if !board.Classify(&session.Board).IsOver() {
		start := time.Now()
		move = c.solver.ChooseMove(&session.Board, side)
		metrics.ObserveSolve(time.Since(start))
	}

	if move.IsValid() {
		session.Board.Set(move.Row, move.Col, side.Mark())
		c.logger.Debug("engine moved",
			slog.String("game_id", string(session.ID)),
			slog.String("side", side.String()),
			slog.Int("row", move.Row),
			slog.Int("col", move.Col),
		)
	}

	session.UpdatedAt = c.clock.Now()
	return c.save(ctx, session)
}

// CheckTerminal classifies the board and removes the session once the game
// is won or drawn. The status and board are returned either way.
func (c *Controller) CheckTerminal(ctx context.Context, session *model.Session) (*model.MoveResult, error) {
	state := board.Classify(&session.Board)
	result := &model.MoveResult{Status: state.String(), Board: session.Board}

	if !state.IsOver() {
		return result, nil
	}

	if _, err := c.storage.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		c.logger.Error("failed to delete finished game",
			slog.String("game_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	c.locks.Delete(session.ID)

	metrics.GameFinished(state.String())
	c.logger.Info("game finished",
		slog.String("game_id", string(session.ID)),
		slog.String("status", state.String()),
		slog.String("board", session.Board.String()),
	)
	c.notifier.Publish(ctx, model.Event{
		Type:      model.EventGameOver,
		Timestamp: c.clock.Now(),
		SessionID: session.ID,
		Status:    state,
		Board:     session.Board,
	})

	return result, nil
}

func (c *Controller) save(ctx context.Context, session *model.Session) error {
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// PruneLocks drops the update lock of every id the store no longer holds, such
// as abandoned games that expired. Locks currently held are left alone.
// Returns the number of locks dropped.
func (c *Controller) PruneLocks(ctx context.Context) int {
	pruned := 0
	c.locks.Range(func(id model.SessionID, mu *sync.Mutex) bool {
		if !mu.TryLock() {
			return true
		}
		defer mu.Unlock()

		if _, err := c.storage.GetSession(ctx, id); errors.Is(err, model.ErrSessionNotFound) {
			c.locks.Delete(id)
			pruned++
		}
		return ctx.Err() == nil
	})

	if pruned > 0 {
		c.logger.Debug("pruned session locks", slog.Int("count", pruned))
	}
	return pruned
}

func (c *Controller) lockFor(id model.SessionID) *sync.Mutex {
	mu, _ := c.locks.LoadOrCompute(id, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	return mu
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, side model.Side, field model.Board) (*model.CreateResult, error)
	GetGame(ctx context.Context, id model.SessionID) (*model.Session, error)
	UpdateGame(ctx context.Context, id model.SessionID, field model.Board) (*model.MoveResult, error)
}

var _ ControllerInterface = (*Controller)(nil)
