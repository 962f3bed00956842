package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/analytics"
	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/inference"
	"trading-journal/internal/logging"
	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// addAnalyzeCommands adds the analysis command.
func addAnalyzeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze journal performance",
		Long: `Compute performance statistics and chart series over the whole journal.

Requires a minimum number of recorded trades (3 by default). The result
is recomputed from scratch on every run.`,
		Example: `  journal analyze
  journal analyze --summary
  journal analyze --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			withSummary, _ := cmd.Flags().GetBool("summary")

			result, err := app.Journal.Analyze(ctx)
			if err != nil {
				switch {
				case apperrors.Is(err, apperrors.ErrNoTrades):
					output.Error("No trades recorded. Add or import trades first.")
				case apperrors.Is(err, apperrors.ErrTooFewTrades):
					output.Error("Not enough trades for analysis: %v", err)
				default:
					output.Error("Analysis failed: %v", err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			printMetrics(output, result.Metrics)
			printSeries(output, result)

			if withSummary {
				if app.LLMClient == nil {
					output.Warning("Summary requested but no OpenAI API key configured.")
					return nil
				}
				summarizer := inference.NewSummarizer(app.LLMClient)
				started := time.Now()
				text, err := summarizer.Summarize(ctx, result)
				logging.LogInferenceCall(app.Logger, "summary", time.Since(started), err)
				if err != nil {
					// The narrative is additive; its failure does not undo the analysis.
					output.Warning("Summary unavailable: %v", err)
					return nil
				}
				output.Println()
				output.Bold("Summary")
				output.Printf("  %s\n", text)
			}
			return nil
		},
	}

	cmd.Flags().Bool("summary", false, "add a model-written narrative of the metrics")

	return cmd
}

func printMetrics(output *Output, m models.Metrics) {
	fm := analytics.FormatMetrics(m)

	output.Bold("Performance Metrics")
	output.Printf("  Total Trades:       %d\n", fm.TotalTrades)
	output.Printf("  Net P&L:            %s\n", output.FormatPnL(m.TotalNetPnL))
	output.Printf("  Total Profit:       %s\n", output.Green(fm.TotalProfit))
	output.Printf("  Total Loss:         %s\n", output.Red(fm.TotalLoss))
	output.Printf("  Win Rate:           %s\n", fm.WinRate)
	output.Printf("  Commissions:        %s\n", fm.TotalCommissions)
	output.Printf("  Best Session:       %s\n", fm.MostProfitableSession)
	output.Printf("  Best Grade:         %s\n", fm.BestPerformingGrade)
	output.Println()
}

func printSeries(output *Output, result *models.AnalysisResult) {
	output.Bold("Outcome Distribution")
	for i, label := range result.OutcomeDistribution.Labels {
		output.Printf("  %-10s %d\n", label, int(result.OutcomeDistribution.Data[i]))
	}
	output.Println()

	output.Bold("Session P&L")
	for i, label := range result.SessionPnL.Labels {
		output.Printf("  %-10s %s\n", label, output.FormatPnL(result.SessionPnL.Data[i]))
	}
	output.Println()

	output.Bold("Grade P&L")
	for i, label := range result.GradePnL.Labels {
		output.Printf("  %-10s %s\n", label, output.FormatPnL(result.GradePnL.Data[i]))
	}
	output.Println()

	output.Bold("Cumulative Net P&L")
	if n := len(result.CumulativePnL.Data); n > 0 {
		output.Printf("  %d points, final %s\n",
			n, utils.FormatCurrency(result.CumulativePnL.Data[n-1]))
	}
}
