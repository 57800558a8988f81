package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/pokerclub/internal/api/response"
)

func newMeetingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Weekly meeting commands",
	}

	cmd.AddCommand(newMeetingListCmd())
	cmd.AddCommand(newMeetingGetCmd())
	cmd.AddCommand(newMeetingCreateCmd())
	cmd.AddCommand(newMeetingDeleteCmd())
	cmd.AddCommand(newMeetingAddResultCmd())
	cmd.AddCommand(newMeetingDeleteResultCmd())

	return cmd
}

func meetingPath(id string) string {
	return "/api/v1/meetings/" + url.PathEscape(id)
}

func newMeetingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Meeting

			if err := client.Get("/api/v1/meetings", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMeetingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a meeting and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Meeting

			if err := client.Get(meetingPath(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMeetingCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <date>",
		Short: "Create a meeting for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Meeting

			if err := client.Post("/api/v1/meetings", map[string]string{"date": args[0]}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newMeetingDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meeting and revoke its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(meetingPath(args[0]), nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Meeting deleted")
			return nil
		},
	}
}

func newMeetingAddResultCmd() *cobra.Command {
	var rank, knockouts int
	var hourGame bool

	cmd := &cobra.Command{
		Use:   "add-result <id> <player>",
		Short: "Record a meeting game result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"player_name": args[1],
				"rank":        rank,
				"knockouts":   knockouts,
				"hour_game":   hourGame,
			}
			var result response.Meeting

			if err := client.Post(meetingPath(args[0])+"/results", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rank, "rank", 0, "Finishing position (required)")
	cmd.Flags().IntVar(&knockouts, "knockouts", 0, "Knockouts the player made")
	cmd.Flags().BoolVar(&hourGame, "hour-game", false, "Score as an hour game (half points)")
	_ = cmd.MarkFlagRequired("rank")

	return cmd
}

func newMeetingDeleteResultCmd() *cobra.Command {
	var rank int

	cmd := &cobra.Command{
		Use:   "delete-result <id> <player>",
		Short: "Remove a meeting game result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("%s/results/%s?rank=%d", meetingPath(args[0]), url.PathEscape(args[1]), rank)
			var result response.Meeting

			if err := client.Delete(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rank, "rank", 0, "Rank of the result to remove (required)")
	_ = cmd.MarkFlagRequired("rank")

	return cmd
}
