package model

// TerminalState classifies a board
type TerminalState uint8

const (
	Continue TerminalState = iota
	XWon
	OWon
	Draw
)

// String returns the name used in API responses
func (t TerminalState) String() string {
	switch t {
	case XWon:
		return "X_WON"
	case OWon:
		return "O_WON"
	case Draw:
		return "DRAW"
	default:
		return "CONTINUE"
	}
}

// IsOver returns true for wins and draws
func (t TerminalState) IsOver() bool {
	return t != Continue
}

// WinFor returns the win state for the given mark
func WinFor(c Cell) TerminalState {
	switch c {
	case X:
		return XWon
	case O:
		return OWon
	default:
		return Continue
	}
}
