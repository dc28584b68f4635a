package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/feedwise/internal/domain"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Manage form definitions",
}

var formInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default form definition as JSON",
	Long: `Write the default form definition (name, email, feedback) as JSON.

Edit the file to add fields, then pass it to 'feedwise submit --fields-file'
or 'feedwise tui --fields-file'.

Examples:
  feedwise form init > form.json
  feedwise form init --out form.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if formInitOut == "" {
			return runFormInit(cmd.OutOrStdout())
		}
		f, err := os.Create(formInitOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", formInitOut, err)
		}
		if err := runFormInit(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", formInitOut, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", formInitOut)
		return nil
	},
}

var formInitOut string

func init() {
	rootCmd.AddCommand(formCmd)
	formCmd.AddCommand(formInitCmd)

	formInitCmd.Flags().StringVarP(&formInitOut, "out", "o", "", "Output file (default stdout)")
}

func runFormInit(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(domain.NewFieldList()); err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	return nil
}
