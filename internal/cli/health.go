package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.HealthResponse

			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}
