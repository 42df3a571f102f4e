package model

import (
	"fmt"
	"strings"
)

// Size is the board dimension
const Size = 3

// Cell is the content of a single square
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the one-character wire form of the cell
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// ParseCell converts a one-character wire value into a Cell
func ParseCell(s string) (Cell, bool) {
	switch s {
	case "X":
		return X, true
	case "O":
		return O, true
	case " ":
		return Empty, true
	}
	return Empty, false
}

// MarshalText encodes the cell as its wire character
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a wire character
func (c *Cell) UnmarshalText(text []byte) error {
	parsed, ok := ParseCell(string(text))
	if !ok {
		return fmt.Errorf("invalid cell %q", text)
	}
	*c = parsed
	return nil
}

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// NoMove is returned by move pickers when there is no empty cell left
var NoMove = Position{Row: -1, Col: -1}

// IsValid returns true if the position is within bounds
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Board is the 3x3 grid, row-major. The zero value is an empty board.
type Board [Size][Size]Cell

// Get returns the cell at row, col. Panics when out of range.
func (b *Board) Get(row, col int) Cell {
	mustBeOnBoard(row, col)
	return b[row][col]
}

// Set stores a cell at row, col. Panics when out of range.
func (b *Board) Set(row, col int, c Cell) {
	mustBeOnBoard(row, col)
	b[row][col] = c
}

// EmptyPositions lists the empty cells in row-major order
func (b *Board) EmptyPositions() []Position {
	var empty []Position
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] == Empty {
				empty = append(empty, Position{Row: row, Col: col})
			}
		}
	}
	return empty
}

// IsFull returns true if no cell is empty
func (b *Board) IsFull() bool {
	return b.Count(Empty) == 0
}

// Count returns how many cells hold c
func (b *Board) Count(c Cell) int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] == c {
				count++
			}
		}
	}
	return count
}

// String renders the board as rows separated by '/', with '.' for empty cells.
// Used in log attributes.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := 0; col < Size; col++ {
			if b[row][col] == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteString(b[row][col].String())
			}
		}
	}
	return sb.String()
}

func mustBeOnBoard(row, col int) {
	if !(Position{Row: row, Col: col}).IsValid() {
		panic(fmt.Sprintf("board position (%d, %d) out of range", row, col))
	}
}

// ParseBoard reads the compact form produced by String. Row separators are
// optional; '.', '_' and ' ' mean empty.
func ParseBoard(s string) (Board, error) {
	var b Board
	compact := strings.ReplaceAll(s, "/", "")
	if len(compact) != Size*Size {
		return b, fmt.Errorf("board must have %d cells, got %d", Size*Size, len(compact))
	}
	for i, ch := range compact {
		switch ch {
		case 'X', 'x':
			b[i/Size][i%Size] = X
		case 'O', 'o':
			b[i/Size][i%Size] = O
		case '.', '_', ' ':
		default:
			return b, fmt.Errorf("invalid cell %q at index %d", ch, i)
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on error, for fixtures
func MustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}
