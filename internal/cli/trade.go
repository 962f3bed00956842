package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/logging"
	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// addTradeCommands adds trade recording and listing commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTradeAddCmd(app))
	rootCmd.AddCommand(newTradeListCmd(app))
	rootCmd.AddCommand(newResetCmd(app))
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trade",
		Long:  "Record a single trade with all fields given explicitly.",
		Example: `  journal add --date 2024-01-01 --pair EURUSD --pnl 1200 --status win
  journal add --pair XAUUSD --position short --pnl -450 --commission 20 --session "new york" --grade B`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			pair, _ := cmd.Flags().GetString("pair")
			lotSize, _ := cmd.Flags().GetFloat64("lot-size")
			position, _ := cmd.Flags().GetString("position")
			status, _ := cmd.Flags().GetString("status")
			pnl, _ := cmd.Flags().GetFloat64("pnl")
			commission, _ := cmd.Flags().GetFloat64("commission")
			session, _ := cmd.Flags().GetString("session")
			bias, _ := cmd.Flags().GetString("bias")
			confirmSMT, _ := cmd.Flags().GetBool("smt")
			news, _ := cmd.Flags().GetString("news")
			emotion, _ := cmd.Flags().GetString("emotion")
			grade, _ := cmd.Flags().GetString("grade")
			notes, _ := cmd.Flags().GetString("notes")

			if pair == "" {
				err := apperrors.NewValidationError("pair", pair, "must not be empty")
				output.Error("%v", err)
				return err
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				err := apperrors.NewValidationError("date", date, "must be YYYY-MM-DD")
				output.Error("%v", err)
				return err
			}
			// Monetary fields must be finite before sign checks: NaN
			// compares false against everything.
			for _, f := range []struct {
				name  string
				value float64
			}{
				{"pnl", pnl},
				{"commission", commission},
				{"lot-size", lotSize},
			} {
				if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
					err := apperrors.NewValidationError(f.name, f.value, "must be a finite number")
					output.Error("%v", err)
					return err
				}
			}
			if lotSize < 0 {
				err := apperrors.NewValidationError("lot-size", lotSize, "must be non-negative")
				output.Error("%v", err)
				return err
			}
			if commission < 0 {
				err := apperrors.NewValidationError("commission", commission, "must be non-negative")
				output.Error("%v", err)
				return err
			}

			trade := models.Trade{
				Date:       date,
				Pair:       pair,
				LotSize:    lotSize,
				Position:   models.ParsePosition(position),
				PnL:        pnl,
				Commission: commission,
				Session:    models.ParseSession(session),
				Bias:       models.ParseBias(bias),
				ConfirmSMT: confirmSMT,
				NewsImpact: models.ParseNewsImpact(news),
				Emotion:    emotion,
				Grade:      models.ParseGrade(grade),
				Notes:      notes,
			}
			if s, ok := models.ParseStatus(status); ok {
				trade.Status = s
			} else {
				trade.Status = models.StatusForPnL(pnl)
			}

			added := app.Journal.Append(ctx, trade)
			t := added[0]

			logging.LogTradeAdded(app.Logger, t.ID, t.Pair, t.PnL)

			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("✓ Trade %s recorded: %s %s %s", t.ID, t.Pair, t.Position, output.FormatPnL(t.NetPnL()))
			return nil
		},
	}

	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("pair", "", "instrument symbol (required)")
	cmd.Flags().Float64("lot-size", 0, "lot size")
	cmd.Flags().String("position", "long", "position (long, short)")
	cmd.Flags().String("status", "", "outcome (win, loss, breakeven; default from P&L sign)")
	cmd.Flags().Float64("pnl", 0, "gross profit/loss")
	cmd.Flags().Float64("commission", 0, "commission cost")
	cmd.Flags().String("session", "london", "session (asia, london, new york)")
	cmd.Flags().String("bias", "ranging", "bias (bullish, bearish, ranging)")
	cmd.Flags().Bool("smt", false, "SMT confirmed")
	cmd.Flags().String("news", "none", "news impact (high, medium, low, none)")
	cmd.Flags().String("emotion", "", "emotional state")
	cmd.Flags().String("grade", "C", "setup grade (A-F)")
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		Long:  "Display the trade collection, optionally filtered.",
		Example: `  journal list
  journal list --session london --status win
  journal list --grade A`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			session, _ := cmd.Flags().GetString("session")
			status, _ := cmd.Flags().GetString("status")
			grade, _ := cmd.Flags().GetString("grade")

			trades := app.Journal.Snapshot()
			filtered := make([]models.Trade, 0, len(trades))
			for _, t := range trades {
				if session != "" && t.Session != models.ParseSession(session) {
					continue
				}
				if status != "" {
					s, _ := models.ParseStatus(status)
					if t.Status != s {
						continue
					}
				}
				if grade != "" && t.Grade != models.ParseGrade(grade) {
					continue
				}
				filtered = append(filtered, t)
			}

			if output.IsJSON() {
				return output.JSON(filtered)
			}

			if len(filtered) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			var totalNet float64
			table := NewTable(output, "Date", "Pair", "Pos", "Status", "P&L", "Comm", "Net", "Session", "Grade")
			for _, t := range filtered {
				totalNet += t.NetPnL()
				table.AddRow(
					t.Date,
					t.Pair,
					string(t.Position),
					string(t.Status),
					utils.FormatCurrency(t.PnL),
					utils.FormatCurrency(t.Commission),
					output.FormatPnL(t.NetPnL()),
					string(t.Session),
					string(t.Grade),
				)
			}
			table.Render()

			output.Println()
			output.Printf("  %d trades, net P&L %s\n", len(filtered), output.FormatPnL(totalNet))
			return nil
		},
	}

	cmd.Flags().String("session", "", "filter by session")
	cmd.Flags().String("status", "", "filter by outcome")
	cmd.Flags().String("grade", "", "filter by grade")

	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every trade in the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				output.Warning("This deletes all %d trades. Re-run with --yes to confirm.", app.Journal.Len())
				return fmt.Errorf("reset not confirmed")
			}

			count := app.Journal.Len()
			app.Journal.Reset(ctx)
			app.Logger.Info().Int("trades", count).Msg("Journal reset")

			output.Success("✓ Journal reset (%d trades removed)", count)
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "confirm the reset")

	return cmd
}
