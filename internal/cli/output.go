package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.CreateGameResponse:
		o.printf("Game: %s\n", v.ID)
		o.printBoard(v.GameField)
	case response.MoveResponse:
		o.printf("Status: %s\n", statusText(v.Status))
		o.printBoard(v.GameField)
	case response.GameResponse:
		o.printf("Game: %s\n", v.ID)
		o.printf("Side: %s\n", v.PlayerSide)
		o.printf("Status: %s\n", statusText(v.Status))
		o.printBoard(v.GameField)
	case response.HealthResponse:
		o.printf("Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

func statusText(status string) string {
	if status == "" {
		return "in progress"
	}
	return status
}

func (o *Output) printBoard(field request.GameField) {
	if len(field) == 0 {
		return
	}

	o.printf("    ")
	for col := range field[0] {
		o.printf(" %d ", col)
	}
	o.printf("\n")

	o.printBorder(len(field[0]))
	for row, cells := range field {
		o.printf(" %d |", row)
		for _, cell := range cells {
			if cell == "" || cell == " " {
				o.printf(" . ")
			} else {
				o.printf(" %s ", cell)
			}
		}
		o.printf("|\n")
	}
	o.printBorder(len(field[0]))
}

func (o *Output) printBorder(size int) {
	o.printf("   +")
	for range size {
		o.printf("---")
	}
	o.printf("+\n")
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}
