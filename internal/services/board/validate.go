package board

import "github.com/mcoot/tictactoe-go/internal/model"

// ValidateInitial checks the board a player submits when creating a game.
// O moves second so its board must be empty; X must have made exactly one move.
func ValidateInitial(side model.Side, b *model.Board) error {
	if !side.IsValid() {
		return model.NewInvalidInput(model.MsgInvalidSide)
	}
	if b.Count(side.Opponent().Mark()) > 0 {
		return model.NewInvalidInput(model.MsgInvalidField)
	}

	switch side {
	case model.SideO:
		if b.Count(model.O) != 0 {
			return model.NewInvalidInput(model.MsgSideOFieldNotEmpty)
		}
	case model.SideX:
		if b.Count(model.X) != 1 {
			return model.NewInvalidInput(model.MsgSideXNeedsOneX)
		}
	}
	return nil
}

// FindMove compares a submitted board with the stored one and returns the single
// cell the owner marked. Exactly one cell may differ and it must now hold the
// owner's mark; the cell's previous content is not checked.
func FindMove(stored, submitted *model.Board, owner model.Side) (model.Position, error) {
	move := model.NoMove
	changes := 0

	for row := 0; row < model.Size; row++ {
		for col := 0; col < model.Size; col++ {
			if stored[row][col] == submitted[row][col] {
				continue
			}
			changes++
			if changes > 1 || submitted[row][col] != owner.Mark() {
				return model.NoMove, model.NewInvalidInput(model.MsgInvalidMove)
			}
			move = model.Position{Row: row, Col: col}
		}
	}

	if changes == 0 {
		return model.NoMove, model.NewInvalidInput(model.MsgInvalidMove)
	}
	return move, nil
}

// Merge applies a validated move to the stored board
func Merge(stored *model.Board, move model.Position, owner model.Side) {
	stored.Set(move.Row, move.Col, owner.Mark())
}
