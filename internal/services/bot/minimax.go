package bot

import (
	"math"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/board"
)

// maxDepth is the number of cells, so the search always reaches a terminal board
const maxDepth = model.Size * model.Size

// Minimax searches the full game tree with alpha-beta pruning
type Minimax struct{}

// NewMinimax creates a new Minimax solver
func NewMinimax() *Minimax {
	return &Minimax{}
}

var _ Strategy = (*Minimax)(nil)

// ChooseMove implements Strategy
func (m *Minimax) ChooseMove(b *model.Board, side model.Side) model.Position {
	return m.FindBestMove(b, side)
}

// FindBestMove returns the best cell for side to play, or model.NoMove when
// the board is full. Ties go to the first cell in row-major order.
// The caller's board is not modified.
func (m *Minimax) FindBestMove(b *model.Board, side model.Side) model.Position {
	best, _ := bestMove(b, side, true)
	return best
}

// searcher holds the state of one FindBestMove call
type searcher struct {
	side  model.Side
	prune bool
	nodes int // positions visited below the root
}

// bestMove runs the root search and also reports the positions visited.
// With prune unset it is plain minimax.
func bestMove(b *model.Board, side model.Side, prune bool) (model.Position, int) {
	s := &searcher{side: side, prune: prune}
	work := *b
	best := model.NoMove
	bestScore := math.MinInt

	for _, pos := range work.EmptyPositions() {
		work[pos.Row][pos.Col] = side.Mark()
		value := s.search(&work, maxDepth-1, false, math.MinInt, math.MaxInt)
		work[pos.Row][pos.Col] = model.Empty

		if value > bestScore {
			bestScore = value
			best = pos
		}
	}
	return best, s.nodes
}

// search returns the minimax value of the board for the searching side.
// depth is the number of plies left.
func (s *searcher) search(b *model.Board, depth int, maximizing bool, alpha, beta int) int {
	s.nodes++
	if state := board.Classify(b); state.IsOver() {
		return score(state, s.side, depth)
	}

	if maximizing {
		return s.maximize(b, depth, alpha, beta)
	}
	return s.minimize(b, depth, alpha, beta)
}

func (s *searcher) maximize(b *model.Board, depth int, alpha, beta int) int {
	best := math.MinInt
	mark := s.side.Mark()
	for row := 0; row < model.Size; row++ {
		for col := 0; col < model.Size; col++ {
			if b[row][col] != model.Empty {
				continue
			}
			b[row][col] = mark
			value := s.search(b, depth-1, false, alpha, beta)
			b[row][col] = model.Empty

			best = max(best, value)
			alpha = max(alpha, best)
			if s.prune && beta <= alpha {
				return best
			}
		}
	}
	return best
}

func (s *searcher) minimize(b *model.Board, depth int, alpha, beta int) int {
	best := math.MaxInt
	opponent := s.side.Opponent().Mark()
	for row := 0; row < model.Size; row++ {
		for col := 0; col < model.Size; col++ {
			if b[row][col] != model.Empty {
				continue
			}
			b[row][col] = opponent
			value := s.search(b, depth-1, true, alpha, beta)
			b[row][col] = model.Empty

			best = min(best, value)
			beta = min(beta, best)
			if s.prune && beta <= alpha {
				return best
			}
		}
	}
	return best
}

// score rates a finished board for side. depth is the plies left when it finished.
func score(state model.TerminalState, side model.Side, depth int) int {
	switch state {
	case model.WinFor(side.Mark()):
		return 10 - depth
	case model.WinFor(side.Opponent().Mark()):
		return depth - 10
	default:
		return 0
	}
}
