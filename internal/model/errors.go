package model

import "errors"

// Common errors used across the application
var (
	ErrSessionNotFound = errors.New("game not found")

	// ErrInvalidInput matches every *InvalidInputError via errors.Is
	ErrInvalidInput = errors.New("invalid input")
)

// Reasons reported to clients for rejected input
const (
	MsgInvalidSide        = "Invalid player side, it should be X or O"
	MsgInvalidField       = "Invalid game field, it should be matrix with 3 rows and 3 columns of X or O or empty cells"
	MsgSideOFieldNotEmpty = "With player O the field must be empty"
	MsgSideXNeedsOneX     = "With player X the field must have one X"
	MsgInvalidMove        = "Invalid game field"
)

// InvalidInputError carries a human-readable reason for a rejected request
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidInput) match
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput returns an InvalidInputError with the given reason
func NewInvalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}
