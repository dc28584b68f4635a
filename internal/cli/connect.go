package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/feedwise/internal/adapters/api"
	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/domain"
)

var connectCmd = &cobra.Command{
	Use:   "connect <form-id>",
	Short: "Validate a form id and print its webhook URL",
	Long: `Validate a form id and print the webhook URL external forms should POST to.

Examples:
  feedwise connect customer-feedback-2025`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := api.NewClient(api.Config{BaseURL: cfg.API.URL, Timeout: cfg.API.Timeout}, logger.Discard{})
		if err != nil {
			return err
		}
		return runConnect(cmd.OutOrStdout(), client.WebhookURL, args[0])
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(out io.Writer, webhookURL func(string) string, raw string) error {
	formID, err := domain.ValidateFormID(raw)
	if err != nil {
		return err
	}
	url := webhookURL(formID)

	fmt.Fprintf(out, "Connected to form %s\n\n", formID)
	fmt.Fprintf(out, "Webhook URL:\n  %s\n\n", url)
	fmt.Fprintln(out, "Send responses as JSON:")
	fmt.Fprintf(out, "  curl -X POST %s \\\n", url)
	fmt.Fprintln(out, "    -H 'Content-Type: application/json' \\")
	fmt.Fprintln(out, `    -d '{"responses": {"name": "Ada", "feedback": "Great!"}}'`)
	return nil
}
