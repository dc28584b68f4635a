package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
	"github.com/emiliopalmerini/feedwise/internal/util"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Browse analyzed feedback for a form",
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback with optional search and filters",
	Long: `List analyzed feedback for a form.

Examples:
  feedwise feedback list --form-id survey
  feedwise feedback list --form-id survey --search "slow" --sentiment negative
  feedwise feedback list --form-id survey --from 2025-01-01 --to 2025-01-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := NewAppContext(ctx, cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(context.WithoutCancel(ctx))

		return runFeedbackList(ctx, cmd.OutOrStdout(), app.API, app.Recorder, listOpts)
	},
}

var feedbackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show sentiment statistics for a form",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := NewAppContext(ctx, cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(context.WithoutCancel(ctx))

		return runFeedbackStats(ctx, cmd.OutOrStdout(), app.API, app.Recorder, statsFormID)
	},
}

type listOptions struct {
	FormID    string
	Search    string
	Sentiment string
	From      string
	To        string
}

var (
	listOpts    listOptions
	statsFormID string
)

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackStatsCmd)

	feedbackListCmd.Flags().StringVarP(&listOpts.FormID, "form-id", "f", "", "Form ID")
	feedbackListCmd.Flags().StringVarP(&listOpts.Search, "search", "s", "", "Free-text search")
	feedbackListCmd.Flags().StringVar(&listOpts.Sentiment, "sentiment", "all", "Sentiment filter: all, positive, neutral, negative")
	feedbackListCmd.Flags().StringVar(&listOpts.From, "from", "", "Start date (YYYY-MM-DD)")
	feedbackListCmd.Flags().StringVar(&listOpts.To, "to", "", "End date (YYYY-MM-DD)")
	_ = feedbackListCmd.MarkFlagRequired("form-id")

	feedbackStatsCmd.Flags().StringVarP(&statsFormID, "form-id", "f", "", "Form ID")
	_ = feedbackStatsCmd.MarkFlagRequired("form-id")
}

func parseDate(flag, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return "", fmt.Errorf("--%s must be YYYY-MM-DD: %w", flag, err)
	}
	return value, nil
}

func runFeedbackList(ctx context.Context, out io.Writer, reader ports.FeedbackReader, recorder ports.MetricsRecorder, opts listOptions) error {
	formID, err := domain.ValidateFormID(opts.FormID)
	if err != nil {
		return err
	}
	filter, err := domain.ParseFilter(opts.Sentiment)
	if err != nil {
		return err
	}
	from, err := parseDate("from", opts.From)
	if err != nil {
		return err
	}
	to, err := parseDate("to", opts.To)
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := reader.ListFeedback(ctx, formID, domain.FeedbackQuery{
		Search:    opts.Search,
		Filter:    filter,
		StartDate: from,
		EndDate:   to,
	})
	recorder.RecordFetch(ctx, ports.FetchFeedbackList, time.Since(start), err)
	if err != nil {
		return errors.New(domain.UserMessage(err, domain.FallbackAPIMessage))
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No feedback found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSENTIMENT\tFEEDBACK\tSUMMARY")
	fmt.Fprintln(w, "----\t---------\t--------\t-------")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			util.FormatDateTime(r.CreatedAt.Time),
			r.Sentiment.Normalized(),
			util.Truncate(r.Headline(), 50),
			util.Truncate(r.Summary, 40),
		)
	}
	return w.Flush()
}

func runFeedbackStats(ctx context.Context, out io.Writer, reader ports.FeedbackReader, recorder ports.MetricsRecorder, rawFormID string) error {
	formID, err := domain.ValidateFormID(rawFormID)
	if err != nil {
		return err
	}

	start := time.Now()
	stats, err := reader.Stats(ctx, formID)
	recorder.RecordFetch(ctx, ports.FetchFeedbackStat, time.Since(start), err)
	if err != nil {
		return errors.New(domain.UserMessage(err, domain.FallbackAPIMessage))
	}

	pct := stats.Percentages()
	fmt.Fprintf(out, "Total responses: %d\n\n", stats.Total)
	printBar(out, "Positive", stats.SentimentCounts.Positive, pct.Positive)
	printBar(out, "Neutral", stats.SentimentCounts.Neutral, pct.Neutral)
	printBar(out, "Negative", stats.SentimentCounts.Negative, pct.Negative)
	return nil
}

func printBar(out io.Writer, label string, count, percent int) {
	const width = 30
	filled := max(0, min(percent, 100)) * width / 100
	fmt.Fprintf(out, "%-9s %s%s %3d%% (%d)\n",
		label, strings.Repeat("█", filled), strings.Repeat("░", width-filled), percent, count)
}
