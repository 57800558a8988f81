package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "clubctl",
		Short: "CLI tool for the poker club points API",
		Long: `clubctl is a CLI tool for running the poker club's season from the terminal.

It covers the points ledger, tournament results and corrections, weekly
meetings and the published leaderboard.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.AdminPassword)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CLUB_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Admin password for changes (env: CLUB_ADMIN_PASSWORD)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newTournamentCmd())
	rootCmd.AddCommand(newMeetingCmd())
	rootCmd.AddCommand(newHashPasswordCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
