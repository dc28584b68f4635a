package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/feedwise/internal/infrastructure/config"
)

// cfg is loaded once before any command runs and treated as read-only afterwards.
var cfg *config.Client

var rootCmd = &cobra.Command{
	Use:   "feedwise",
	Short: "Collect form feedback and explore its sentiment analysis",
	Long: `feedwise connects to a feedback analysis service.

Design a form, submit responses to a form's webhook, and browse the analyzed
feedback with search, sentiment filters and statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
