package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// RandomStrategy picks a uniformly random empty cell. Used for the engine's
// opening move, where searching gains nothing.
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

var _ Strategy = (*RandomStrategy)(nil)

// ChooseMove picks a random empty cell on the board
func (s *RandomStrategy) ChooseMove(board *model.Board, _ model.Side) model.Position {
	empty := board.EmptyPositions()
	if len(empty) == 0 {
		return model.NoMove
	}
	return empty[s.random.Intn(len(empty))]
}
