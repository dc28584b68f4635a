package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
	"github.com/emiliopalmerini/feedwise/internal/submission"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a form response and print its analysis",
	Long: `Submit a form response to a form's webhook and print the sentiment analysis.

Required fields are checked locally before anything is sent. Without
--fields-file the default name, email and feedback form is used.

Examples:
  feedwise submit --form-id survey --field name=Ada --field feedback="Loved it"
  feedwise submit --form-id survey --fields-file form.json --field score=9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := NewAppContext(ctx, cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(context.WithoutCancel(ctx))

		return runSubmit(ctx, cmd.OutOrStdout(), app.API, app.Recorder, app.Logger, submitOpts)
	},
}

type submitOptions struct {
	FormID     string
	Fields     []string
	FieldsFile string
}

var submitOpts submitOptions

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&submitOpts.FormID, "form-id", "f", "", "Form ID to submit to")
	submitCmd.Flags().StringArrayVar(&submitOpts.Fields, "field", nil, "Field value as name=value (repeatable)")
	submitCmd.Flags().StringVar(&submitOpts.FieldsFile, "fields-file", "", "Form definition written by 'feedwise form init'")
	_ = submitCmd.MarkFlagRequired("form-id")
}

func runSubmit(ctx context.Context, out io.Writer, submitter ports.Submitter, recorder ports.MetricsRecorder, logger ports.Logger, opts submitOptions) error {
	fields, err := loadFields(opts.FieldsFile)
	if err != nil {
		return err
	}
	values, err := parseFieldValues(opts.Fields, fields)
	if err != nil {
		return err
	}

	flow := submission.NewFlow(strings.TrimSpace(opts.FormID), fields, submitter, recorder, logger)
	for name := range values {
		if n, ok := values[name].(int); ok {
			flow.SetRating(name, n)
		} else {
			flow.SetValue(name, values.Text(name))
		}
	}

	result, err := flow.Submit(ctx)
	if err != nil {
		return errors.New(domain.UserMessage(err, domain.FallbackSubmitMessage))
	}

	printAnalysis(out, result)
	return nil
}

func printAnalysis(out io.Writer, a domain.AnalysisResult) {
	fmt.Fprintln(out, "Thank you for your feedback!")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Sentiment: %s\n", strings.ToUpper(string(a.Sentiment.Normalized())))
	if a.SentimentAnalysis != "" {
		fmt.Fprintf(out, "  %s\n", a.SentimentAnalysis)
	}
	fmt.Fprintf(out, "Summary:   %s\n", a.Summary)
	if a.DetailedAnalysis != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Detailed analysis:")
		fmt.Fprintf(out, "  %s\n", a.DetailedAnalysis)
	}
	if a.ID != "" {
		fmt.Fprintf(out, "\nReference: %s\n", a.ID)
	}
}
