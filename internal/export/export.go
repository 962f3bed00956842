// Package export writes the journal and its analysis result out as a set
// of named tabular sheets for the report-download boundary.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"trading-journal/internal/analytics"
	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// Sheet file names within the report directory.
const (
	SheetMetrics             = "metrics.csv"
	SheetTrades              = "trades.csv"
	SheetCumulativePnL       = "cumulative_pnl.csv"
	SheetOutcomeDistribution = "outcome_distribution.csv"
	SheetSessionPnL          = "session_pnl.csv"
	SheetGradePnL            = "grade_pnl.csv"
)

// WriteReport lays the trade collection and analysis result out across
// named sheets: a metrics summary, the full trade list, and one sheet per
// chart series as paired label/value columns. The result may be nil, in
// which case only the trade list is written.
func WriteReport(dir string, trades []models.Trade, result *models.AnalysisResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrap(err, "creating report directory")
	}

	if err := writeTrades(filepath.Join(dir, SheetTrades), trades); err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	if err := writeMetrics(filepath.Join(dir, SheetMetrics), result.Metrics); err != nil {
		return err
	}

	series := []struct {
		file  string
		label string
		s     models.Series
	}{
		{SheetCumulativePnL, "date", result.CumulativePnL},
		{SheetOutcomeDistribution, "outcome", result.OutcomeDistribution},
		{SheetSessionPnL, "session", result.SessionPnL},
		{SheetGradePnL, "grade", result.GradePnL},
	}
	for _, sh := range series {
		if err := writeSeries(filepath.Join(dir, sh.file), sh.label, sh.s); err != nil {
			return err
		}
	}
	return nil
}

func writeTrades(path string, trades []models.Trade) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(err, "creating trades sheet")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{
		"id", "date", "pair", "lot_size", "position", "status", "pnl",
		"commission", "net_pnl", "session", "bias", "confirm_smt",
		"news_impact", "emotion", "grade", "notes",
	})
	for _, t := range trades {
		writer.Write([]string{
			t.ID,
			t.Date,
			t.Pair,
			formatFloat(t.LotSize),
			string(t.Position),
			string(t.Status),
			formatFloat(t.PnL),
			formatFloat(t.Commission),
			formatFloat(t.NetPnL()),
			string(t.Session),
			string(t.Bias),
			strconv.FormatBool(t.ConfirmSMT),
			string(t.NewsImpact),
			t.Emotion,
			string(t.Grade),
			t.Notes,
		})
	}
	return writer.Error()
}

func writeMetrics(path string, m models.Metrics) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(err, "creating metrics sheet")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	fm := analytics.FormatMetrics(m)

	writer.Write([]string{"metric", "value"})
	rows := [][]string{
		{"total_net_pnl", fm.TotalNetPnL},
		{"total_profit", fm.TotalProfit},
		{"total_loss", fm.TotalLoss},
		{"win_rate", fm.WinRate},
		{"total_trades", strconv.Itoa(fm.TotalTrades)},
		{"total_commissions", fm.TotalCommissions},
		{"most_profitable_session", fm.MostProfitableSession},
		{"best_performing_grade", fm.BestPerformingGrade},
	}
	for _, r := range rows {
		writer.Write(r)
	}
	return writer.Error()
}

func writeSeries(path, labelHeader string, s models.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.Wrapf(err, "creating series sheet %s", filepath.Base(path))
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{labelHeader, "value"})
	for i, label := range s.Labels {
		writer.Write([]string{label, formatFloat(s.Data[i])})
	}
	return writer.Error()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
