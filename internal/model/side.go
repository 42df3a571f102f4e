package model

import "fmt"

// Side is the mark a participant plays with. The zero value is not a valid side.
type Side uint8

const (
	NoSide Side = iota
	SideX
	SideO
)

// ParseSide converts the wire form of a side. Anything but "X" or "O" yields NoSide.
func ParseSide(s string) Side {
	switch s {
	case "X":
		return SideX
	case "O":
		return SideO
	default:
		return NoSide
	}
}

// IsValid returns true for X and O
func (s Side) IsValid() bool {
	return s == SideX || s == SideO
}

// Mark returns the cell value this side places
func (s Side) Mark() Cell {
	switch s {
	case SideX:
		return X
	case SideO:
		return O
	default:
		return Empty
	}
}

// Opponent returns the other side
func (s Side) Opponent() Side {
	switch s {
	case SideX:
		return SideO
	case SideO:
		return SideX
	default:
		return NoSide
	}
}

func (s Side) String() string {
	switch s {
	case SideX:
		return "X"
	case SideO:
		return "O"
	default:
		return ""
	}
}

// MarshalText encodes the side as "X" or "O"
func (s Side) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid side %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes "X" or "O"
func (s *Side) UnmarshalText(text []byte) error {
	parsed := ParseSide(string(text))
	if !parsed.IsValid() {
		return fmt.Errorf("invalid side %q", text)
	}
	*s = parsed
	return nil
}
