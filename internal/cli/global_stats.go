package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
	"github.com/emiliopalmerini/feedwise/internal/util"
)

var globalStatsCmd = &cobra.Command{
	Use:   "global-stats",
	Short: "Show totals across every form",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := NewAppContext(ctx, cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(context.WithoutCancel(ctx))

		return runGlobalStats(ctx, cmd.OutOrStdout(), app.API, app.Recorder)
	},
}

func init() {
	rootCmd.AddCommand(globalStatsCmd)
}

func runGlobalStats(ctx context.Context, out io.Writer, reader ports.GlobalStatsReader, recorder ports.MetricsRecorder) error {
	start := time.Now()
	stats, err := reader.GlobalStats(ctx)
	recorder.RecordFetch(ctx, ports.FetchGlobalStats, time.Since(start), err)
	if err != nil {
		return errors.New(domain.UserMessage(err, domain.FallbackAPIMessage))
	}

	fmt.Fprintf(out, "Forms:        %d\n", stats.Forms)
	fmt.Fprintf(out, "Responses:    %d\n", stats.Responses)
	fmt.Fprintf(out, "Satisfaction: %s\n", util.FormatPercent(stats.Satisfaction))
	return nil
}
