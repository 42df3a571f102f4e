package board

import "github.com/mcoot/tictactoe-go/internal/model"

// Classify reports whether the board is won, drawn or still in play.
// Row i and column i are checked together for each i, then the two diagonals.
func Classify(b *model.Board) model.TerminalState {
	for i := 0; i < model.Size; i++ {
		if c := b[i][0]; c != model.Empty && c == b[i][1] && c == b[i][2] {
			return model.WinFor(c)
		}
		if c := b[0][i]; c != model.Empty && c == b[1][i] && c == b[2][i] {
			return model.WinFor(c)
		}
	}

	if c := b[1][1]; c != model.Empty {
		if c == b[0][0] && c == b[2][2] {
			return model.WinFor(c)
		}
		if c == b[0][2] && c == b[2][0] {
			return model.WinFor(c)
		}
	}

	if b.IsFull() {
		return model.Draw
	}
	return model.Continue
}
