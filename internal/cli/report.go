package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/export"
)

// addReportCommands adds the report-export command.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <dir>",
		Short: "Export the journal and analysis as tabular sheets",
		Long: `Write the full trade list, the metrics summary, and one sheet per
chart series into the given directory as CSV files.

Runs the analysis first when the journal holds enough trades; with fewer,
only the trade list is exported.`,
		Example: `  journal report ./report
  journal report /tmp/journal-report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			dir := args[0]
			trades := app.Journal.Snapshot()
			if len(trades) == 0 {
				output.Error("No trades recorded, nothing to export.")
				return apperrors.ErrNoTrades
			}

			result, err := app.Journal.Analyze(ctx)
			if err != nil {
				app.Logger.Warn().Err(err).Msg("Exporting without analysis sheets")
				output.Warning("Analysis unavailable (%v); exporting trade list only.", err)
				result = nil
			}

			if err := export.WriteReport(dir, trades, result); err != nil {
				app.Logger.Error().Err(err).Str("dir", dir).Msg("Report export failed")
				output.Error("Export failed: %v", err)
				return err
			}

			app.Logger.Info().Str("dir", dir).Int("trades", len(trades)).Msg("Report exported")
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"dir":      dir,
					"trades":   len(trades),
					"analysis": result != nil,
				})
			}
			output.Success("✓ Exported %d trades to %s", len(trades), dir)
			return nil
		},
	}

	return cmd
}
