package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/importer"
	"trading-journal/internal/inference"
	"trading-journal/internal/logging"
)

// addImportCommands adds the bulk-import command.
func addImportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newImportCmd(app))
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-import trades from a spreadsheet",
		Long: `Import trades from a CSV workbook with an arbitrary column layout.

Column names are matched against known synonyms ("profit", "P&L" and
"net pnl" all feed pnl). Rows without a usable P&L value are skipped.
With --llm-mapping the column mapping is inferred by the configured
model from a bounded sample of rows instead of the synonym table.`,
		Example: `  journal import trades.csv
  journal import export_from_broker.csv --llm-mapping`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			logger := logging.WithOperation(app.Logger, "import")
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			path := args[0]
			useLLM, _ := cmd.Flags().GetBool("llm-mapping")
			if !useLLM && app.Config.Import.Strategy == "llm" {
				useLLM = true
			}

			headers, rows, err := importer.ReadCSVFile(path)
			if err != nil {
				output.Error("Failed to read %s: %v", path, err)
				return err
			}
			if len(rows) == 0 {
				output.Error("No data rows in %s", path)
				return apperrors.NewImportError(path, "no data rows", apperrors.ErrNoRows)
			}

			var mapper importer.Mapper = importer.NewSynonymMapper()
			if useLLM {
				if app.LLMClient == nil {
					err := fmt.Errorf("llm mapping requested but no OpenAI API key configured")
					output.Error("%v", err)
					return err
				}
				mapper = inference.NewColumnMapper(app.LLMClient, app.Config.Import.SampleRows)
			}

			normalizer := importer.NewNormalizer(mapper, logger)
			trades, err := normalizer.Normalize(ctx, headers, rows)
			if err != nil {
				logger.Error().Err(err).Str("file", path).Msg("Import failed")
				output.Error("Import failed: %v", err)
				return err
			}

			if len(trades) == 0 {
				output.Warning("No importable trades found in %s (%d rows had no usable P&L)", path, len(rows))
				return nil
			}

			added := app.Journal.Append(ctx, trades...)
			logging.LogImport(logger, path, len(rows), len(added))

			if output.IsJSON() {
				return output.JSON(map[string]int{
					"rows":     len(rows),
					"imported": len(added),
					"skipped":  len(rows) - len(added),
				})
			}
			output.Success("✓ Imported %d of %d rows from %s", len(added), len(rows), path)
			if skipped := len(rows) - len(added); skipped > 0 {
				output.Dim("  %d rows skipped (no usable P&L)", skipped)
			}
			return nil
		},
	}

	cmd.Flags().Bool("llm-mapping", false, "infer the column mapping with the configured model")

	return cmd
}
