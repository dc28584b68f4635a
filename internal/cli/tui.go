package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apptui "github.com/emiliopalmerini/feedwise/internal/app/tui"
	"github.com/emiliopalmerini/feedwise/internal/domain"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive form builder and dashboard",
	Long: `Open the interactive client: connect a form, design its fields, fill and
submit it, and explore the feedback dashboard.

Logs are written to FEEDWISE_LOG_FILE while the interface is open.`,
	RunE: runTUI,
}

var (
	tuiFormID     string
	tuiFieldsFile string
)

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVarP(&tuiFormID, "form-id", "f", "", "Connect to this form on start")
	tuiCmd.Flags().StringVar(&tuiFieldsFile, "fields-file", "", "Start from a saved form definition")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := NewAppContext(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer app.Close(context.WithoutCancel(ctx))

	fields, err := loadFields(tuiFieldsFile)
	if err != nil {
		return err
	}
	formID := tuiFormID
	if formID != "" {
		if formID, err = domain.ValidateFormID(formID); err != nil {
			return err
		}
	}

	model := apptui.NewApp(ctx, apptui.Deps{
		API:        app.API,
		Recorder:   app.Recorder,
		Logger:     app.Logger,
		Debounce:   cfg.Debounce,
		WebhookURL: app.API.WebhookURL,
		FormID:     formID,
		Fields:     fields,
	})
	defer model.Close()

	app.Logger.Info(fmt.Sprintf("starting tui api=%s", app.API.BaseURL()))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
