package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/pokerclub/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player ledger commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerDeleteCmd())

	return cmd
}

func playerPath(name string) string {
	return "/api/v1/players/" + url.PathEscape(name)
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a player's points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player

			if err := client.Get(playerPath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a player to the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result response.Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a player with no points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(playerPath(args[0]), nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Player deleted")
			return nil
		},
	}
}
