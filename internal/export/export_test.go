package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"trading-journal/internal/analytics"
	"trading-journal/internal/models"
)

func exportTrades() []models.Trade {
	return []models.Trade{
		{
			ID: "TRD-1", Date: "2024-03-01", Pair: "EURUSD", LotSize: 1.5,
			Position: models.PositionLong, Status: models.StatusWin,
			PnL: 100000, Commission: 10000, Session: models.SessionLondon,
			Bias: models.BiasBullish, ConfirmSMT: true,
			NewsImpact: models.NewsHigh, Emotion: "calm",
			Grade: models.GradeA, Notes: "clean setup",
		},
		{
			ID: "TRD-2", Date: "2024-03-02", Pair: "GBPUSD",
			Position: models.PositionShort, Status: models.StatusLoss,
			PnL: -50000, Commission: 5000, Session: models.SessionAsia,
			Bias: models.BiasBearish, Grade: models.GradeB,
		},
		{
			ID: "TRD-3", Date: "2024-03-03", Pair: "XAUUSD",
			Position: models.PositionLong, Status: models.StatusBreakeven,
			PnL: 0, Commission: 2000, Session: models.SessionLondon,
			Bias: models.BiasRanging, Grade: models.GradeA,
		},
	}
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open sheet %s: %v", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse sheet %s: %v", path, err)
	}
	return records
}

func TestWriteReportFullResult(t *testing.T) {
	dir := t.TempDir()
	trades := exportTrades()
	result, err := analytics.Analyze(trades, 3)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	if err := WriteReport(dir, trades, result); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	sheets := []string{
		SheetTrades, SheetMetrics, SheetCumulativePnL,
		SheetOutcomeDistribution, SheetSessionPnL, SheetGradePnL,
	}
	for _, sheet := range sheets {
		if _, err := os.Stat(filepath.Join(dir, sheet)); err != nil {
			t.Errorf("sheet %s not written: %v", sheet, err)
		}
	}
}

func TestWriteReportTradesSheet(t *testing.T) {
	dir := t.TempDir()
	trades := exportTrades()

	if err := WriteReport(dir, trades, nil); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	records := readSheet(t, filepath.Join(dir, SheetTrades))
	if len(records) != len(trades)+1 {
		t.Fatalf("trades sheet has %d rows, want %d", len(records), len(trades)+1)
	}
	if records[0][0] != "id" || records[0][8] != "net_pnl" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "TRD-1" || records[1][2] != "EURUSD" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	// net_pnl column carries pnl minus commission.
	if records[1][8] != "90000.00" {
		t.Errorf("net_pnl = %q, want 90000.00", records[1][8])
	}
}

func TestWriteReportNilResultSkipsAnalysisSheets(t *testing.T) {
	dir := t.TempDir()

	if err := WriteReport(dir, exportTrades(), nil); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, SheetTrades)); err != nil {
		t.Errorf("trades sheet not written: %v", err)
	}
	for _, sheet := range []string{SheetMetrics, SheetCumulativePnL, SheetSessionPnL} {
		if _, err := os.Stat(filepath.Join(dir, sheet)); !os.IsNotExist(err) {
			t.Errorf("sheet %s should not exist without a result", sheet)
		}
	}
}

func TestWriteReportMetricsSheet(t *testing.T) {
	dir := t.TempDir()
	trades := exportTrades()
	result, err := analytics.Analyze(trades, 3)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	if err := WriteReport(dir, trades, result); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	records := readSheet(t, filepath.Join(dir, SheetMetrics))
	byName := make(map[string]string, len(records))
	for _, r := range records[1:] {
		byName[r[0]] = r[1]
	}

	if byName["total_trades"] != "3" {
		t.Errorf("total_trades = %q, want 3", byName["total_trades"])
	}
	if byName["most_profitable_session"] != "london" {
		t.Errorf("most_profitable_session = %q, want london", byName["most_profitable_session"])
	}
	if byName["best_performing_grade"] != "A" {
		t.Errorf("best_performing_grade = %q, want A", byName["best_performing_grade"])
	}
	if byName["win_rate"] != "33.33%" {
		t.Errorf("win_rate = %q, want 33.33%%", byName["win_rate"])
	}
}

func TestWriteReportSeriesSheets(t *testing.T) {
	dir := t.TempDir()
	trades := exportTrades()
	result, err := analytics.Analyze(trades, 3)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	if err := WriteReport(dir, trades, result); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	outcome := readSheet(t, filepath.Join(dir, SheetOutcomeDistribution))
	if len(outcome) != 4 {
		t.Fatalf("outcome sheet has %d rows, want 4", len(outcome))
	}
	if outcome[0][0] != "outcome" || outcome[1][0] != "Wins" {
		t.Errorf("unexpected outcome rows: %v", outcome[:2])
	}

	session := readSheet(t, filepath.Join(dir, SheetSessionPnL))
	if len(session) != 4 {
		t.Fatalf("session sheet has %d rows, want 4", len(session))
	}
	if session[2][0] != "london" || session[2][1] != "88000.00" {
		t.Errorf("london row = %v, want 88000.00", session[2])
	}

	cumulative := readSheet(t, filepath.Join(dir, SheetCumulativePnL))
	if len(cumulative) != len(trades)+1 {
		t.Fatalf("cumulative sheet has %d rows, want %d", len(cumulative), len(trades)+1)
	}
	if cumulative[len(cumulative)-1][1] != "33000.00" {
		t.Errorf("final cumulative value = %q, want 33000.00", cumulative[len(cumulative)-1][1])
	}
}
