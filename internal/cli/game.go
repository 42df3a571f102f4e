package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameUpdateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameWatchCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var side, field string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new game against the engine",
		Long: `Start a new game. Playing X, the field must hold your opening X.
Playing O, the field must be empty and the engine opens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gameField, err := parseField(field)
			if err != nil {
				return err
			}

			req := request.CreateGameRequest{
				PlayerSide: strings.ToUpper(side),
				GameField:  gameField,
			}
			var result response.CreateGameResponse

			if err := client.Post("/api/v1/game", req, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&side, "side", "X", "Side to play: X or O")
	cmd.Flags().StringVar(&field, "field", ".........", "Starting board, 9 cells row-major")

	return cmd
}

func newGameUpdateCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Submit a board with one new mark of yours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameField, err := parseField(field)
			if err != nil {
				return err
			}

			result, err := submit(args[0], gameField)
			if err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(*result)
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Board after your move, 9 cells row-major")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := fetch(args[0])
			if err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(*result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <row> <col>",
		Short: "Place your mark at row and col (0-2)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			row, err := parseCoord("row", args[1])
			if err != nil {
				return err
			}
			col, err := parseCoord("col", args[2])
			if err != nil {
				return err
			}

			game, err := fetch(id)
			if err != nil {
				return err
			}

			side := model.ParseSide(game.PlayerSide)
			if !side.IsValid() {
				return fmt.Errorf("server returned unknown side %q", game.PlayerSide)
			}

			board := game.GameField.Board()
			if board.Get(row, col) != model.Empty {
				return fmt.Errorf("cell (%d, %d) is already taken", row, col)
			}
			board.Set(row, col, side.Mark())

			result, err := submit(id, request.FieldFromBoard(board))
			if err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(*result)
			return nil
		},
	}
}

func fetch(id string) (*response.GameResponse, error) {
	var result response.GameResponse
	if err := client.Get("/api/v1/game/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func submit(id string, field request.GameField) (*response.MoveResponse, error) {
	req := request.UpdateGameRequest{GameField: field}
	var result response.MoveResponse
	if err := client.Put("/api/v1/game/"+url.PathEscape(id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func parseField(s string) (request.GameField, error) {
	b, err := model.ParseBoard(s)
	if err != nil {
		return nil, fmt.Errorf("invalid field: %w", err)
	}
	return request.FieldFromBoard(b), nil
}

func parseCoord(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v < 0 || v >= model.Size {
		return 0, fmt.Errorf("%s must be between 0 and %d", name, model.Size-1)
	}
	return v, nil
}
