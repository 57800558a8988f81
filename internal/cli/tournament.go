package cli

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/pokerclub/internal/api/response"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament lifecycle commands",
	}

	cmd.AddCommand(newTournamentListCmd())
	cmd.AddCommand(newTournamentGetCmd())
	cmd.AddCommand(newTournamentCreateCmd())
	cmd.AddCommand(newTournamentUpdateCmd())
	cmd.AddCommand(newTournamentDeleteCmd())
	cmd.AddCommand(newTournamentKnockoutCmd())
	cmd.AddCommand(newTournamentRemoveEntrantCmd())
	cmd.AddCommand(newTournamentFinishCmd())
	cmd.AddCommand(newTournamentAddResultCmd())
	cmd.AddCommand(newTournamentEditResultCmd())
	cmd.AddCommand(newTournamentDeleteResultCmd())

	return cmd
}

func tournamentPath(id string, parts ...string) string {
	path := "/api/v1/tournaments/" + url.PathEscape(id)
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return path
}

// runTournament sends a request and prints the tournament it returns
func runTournament(cmd *cobra.Command, method, path string, body any) error {
	var result response.Tournament

	if err := client.Do(method, path, body, &result); err != nil {
		return err
	}

	output(cmd).Print(result)
	return nil
}

func newTournamentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tournaments, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Tournament

			if err := client.Get("/api/v1/tournaments", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newTournamentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a tournament and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTournament(cmd, http.MethodGet, tournamentPath(args[0]), nil)
		},
	}
}

func newTournamentCreateCmd() *cobra.Command {
	var name, tournamentType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an active tournament",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name, "type": tournamentType}
			return runTournament(cmd, http.MethodPost, "/api/v1/tournaments", req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name (required)")
	cmd.Flags().StringVar(&tournamentType, "type", "Standard", "Tournament type: Standard, HeadsUp, PKO, KO")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTournamentUpdateCmd() *cobra.Command {
	var name, tournamentType string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a tournament's name or type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("name") {
				req["name"] = name
			}
			if cmd.Flags().Changed("type") {
				req["type"] = tournamentType
			}
			if cmd.Flags().Changed("active") {
				req["is_active"] = active
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to update: set --name, --type or --active")
			}
			return runTournament(cmd, http.MethodPatch, tournamentPath(args[0]), req)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New tournament name")
	cmd.Flags().StringVar(&tournamentType, "type", "", "New tournament type")
	cmd.Flags().BoolVar(&active, "active", true, "Active flag (may only restate the current state)")

	return cmd
}

func newTournamentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tournament and revoke its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(tournamentPath(args[0]), nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Tournament deleted")
			return nil
		},
	}
}

func newTournamentKnockoutCmd() *cobra.Command {
	var knockouts int

	cmd := &cobra.Command{
		Use:   "knockout <id> <player>",
		Short: "Record a player leaving an active tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_name": args[1], "knockouts": knockouts}
			return runTournament(cmd, http.MethodPost, tournamentPath(args[0], "knockouts"), req)
		},
	}

	cmd.Flags().IntVar(&knockouts, "knockouts", 0, "Knockouts the player made")

	return cmd
}

func newTournamentRemoveEntrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-entrant <id> <player>",
		Short: "Remove an entrant from an active tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTournament(cmd, http.MethodDelete, tournamentPath(args[0], "entrants", args[1]), nil)
		},
	}
}

func newTournamentFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish <id>",
		Short: "Finish a tournament and award its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTournament(cmd, http.MethodPost, tournamentPath(args[0], "finish"), nil)
		},
	}
}

func newTournamentAddResultCmd() *cobra.Command {
	var rank, knockouts int

	cmd := &cobra.Command{
		Use:   "add-result <id> <player>",
		Short: "Add a late result to a finished tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_name": args[1], "rank": rank, "knockouts": knockouts}
			return runTournament(cmd, http.MethodPost, tournamentPath(args[0], "results"), req)
		},
	}

	cmd.Flags().IntVar(&rank, "rank", 0, "Finishing position (required)")
	cmd.Flags().IntVar(&knockouts, "knockouts", 0, "Knockouts the player made")
	_ = cmd.MarkFlagRequired("rank")

	return cmd
}

func newTournamentEditResultCmd() *cobra.Command {
	var rank, knockouts int

	cmd := &cobra.Command{
		Use:   "edit-result <id> <player>",
		Short: "Move a result or change its knockouts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("rank") {
				req["rank"] = rank
			}
			if cmd.Flags().Changed("knockouts") {
				req["knockouts"] = knockouts
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to edit: set --rank or --knockouts")
			}
			return runTournament(cmd, http.MethodPatch, tournamentPath(args[0], "results", args[1]), req)
		},
	}

	cmd.Flags().IntVar(&rank, "rank", 0, "New finishing position")
	cmd.Flags().IntVar(&knockouts, "knockouts", 0, "New knockout count")

	return cmd
}

func newTournamentDeleteResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-result <id> <player>",
		Short: "Remove a result from a finished tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTournament(cmd, http.MethodDelete, tournamentPath(args[0], "results", args[1]), nil)
		},
	}
}
