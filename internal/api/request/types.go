package request

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// GameField is the wire form of a board: 3 rows of 3 cells, each "X", "O" or " "
type GameField [][]string

// CreateGameRequest is the request body for starting a game
type CreateGameRequest struct {
	PlayerSide string    `json:"playerSide" validate:"required,oneof=X O"`
	GameField  GameField `json:"gameField" validate:"required,len=3,dive,len=3,dive,cell"`
}

// UpdateGameRequest is the request body for submitting a move
type UpdateGameRequest struct {
	GameField GameField `json:"gameField" validate:"required,len=3,dive,len=3,dive,cell"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "cell", validCell)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// validCell accepts the wire form of a single cell
func validCell(fl validator.FieldLevel) bool {
	_, ok := model.ParseCell(fl.Field().String())
	return ok
}

// Parse validates the request and returns the chosen side and starting board.
// A bad side is reported before a bad field.
func (r *CreateGameRequest) Parse() (model.Side, model.Board, error) {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].StructField() == "PlayerSide" {
			return model.NoSide, model.Board{}, model.NewInvalidInput(model.MsgInvalidSide)
		}
		return model.NoSide, model.Board{}, model.NewInvalidInput(model.MsgInvalidField)
	}
	return model.ParseSide(r.PlayerSide), r.GameField.Board(), nil
}

// Parse validates the request and returns the submitted board
func (r *UpdateGameRequest) Parse() (model.Board, error) {
	if err := validate.Struct(r); err != nil {
		return model.Board{}, model.NewInvalidInput(model.MsgInvalidField)
	}
	return r.GameField.Board(), nil
}

// Board converts a validated field. Unknown cells read as empty.
func (f GameField) Board() model.Board {
	var b model.Board
	for row := 0; row < model.Size && row < len(f); row++ {
		for col := 0; col < model.Size && col < len(f[row]); col++ {
			b[row][col], _ = model.ParseCell(f[row][col])
		}
	}
	return b
}

// FieldFromBoard converts a board to its wire form
func FieldFromBoard(b model.Board) GameField {
	field := make(GameField, model.Size)
	for row := 0; row < model.Size; row++ {
		field[row] = make([]string, model.Size)
		for col := 0; col < model.Size; col++ {
			field[row][col] = b[row][col].String()
		}
	}
	return field
}
