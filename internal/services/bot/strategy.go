package bot

import "github.com/mcoot/tictactoe-go/internal/model"

// Strategy picks the cell the engine plays next.
// Implementations return model.NoMove when the board has no empty cell.
type Strategy interface {
	ChooseMove(board *model.Board, side model.Side) model.Position
}
