package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/pokerclub/internal/api/response"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Published leaderboard commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the last published leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Leaderboard

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "publish",
		Short: "Rebuild the leaderboard from the current ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Leaderboard

			if err := client.Post("/api/v1/leaderboard/publish", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
