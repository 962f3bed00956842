package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trading-journal/internal/config"
	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Journal: config.JournalConfig{
			DBPath:            filepath.Join(dir, "journal.db"),
			MinTradesAnalysis: 3,
		},
		Import: config.ImportConfig{SampleRows: 100, Strategy: "deterministic"},
	}
	return NewRootCmd(cfg, zerolog.Nop())
}

func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestAddRejectsNonFiniteValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"NaN pnl", []string{"add", "--pair", "EURUSD", "--pnl", "NaN"}},
		{"Inf pnl", []string{"add", "--pair", "EURUSD", "--pnl", "Inf"}},
		{"negative Inf pnl", []string{"add", "--pair", "EURUSD", "--pnl", "-Inf"}},
		{"NaN commission", []string{"add", "--pair", "EURUSD", "--pnl", "100", "--commission", "NaN"}},
		{"Inf lot size", []string{"add", "--pair", "EURUSD", "--pnl", "100", "--lot-size", "Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestRoot(t)
			_, err := execute(t, root, tt.args...)
			if err == nil {
				t.Fatal("expected validation error, got none")
			}
			var vErr *apperrors.ValidationError
			if !apperrors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}

			// The rejected trade must not have reached the journal.
			out, err := execute(t, root, "list", "--json")
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			var trades []models.Trade
			if err := json.Unmarshal([]byte(out), &trades); err != nil {
				t.Fatalf("list output is not JSON: %q: %v", out, err)
			}
			if len(trades) != 0 {
				t.Errorf("journal holds %d trades after a rejected add", len(trades))
			}
		})
	}
}

func TestAddThenListRoundTrip(t *testing.T) {
	root := newTestRoot(t)

	if _, err := execute(t, root,
		"add", "--pair", "eurusd", "--pnl", "1250.75", "--commission", "12.5",
		"--session", "new york", "--grade", "A", "--json"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out, err := execute(t, root, "list", "--json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var trades []models.Trade
	if err := json.Unmarshal([]byte(out), &trades); err != nil {
		t.Fatalf("list output is not JSON: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("listed %d trades, want 1", len(trades))
	}
	if trades[0].Pair != "eurusd" || trades[0].PnL != 1250.75 {
		t.Errorf("unexpected trade: %+v", trades[0])
	}
	if trades[0].Session != models.SessionNewYork || trades[0].Grade != models.GradeA {
		t.Errorf("enums not coerced: %+v", trades[0])
	}
	if trades[0].Status != models.StatusWin {
		t.Errorf("Status = %q, want win from P&L sign", trades[0].Status)
	}
}

func TestReportEmptyJournalFails(t *testing.T) {
	root := newTestRoot(t)
	dir := t.TempDir()

	_, err := execute(t, root, "report", dir)
	if !apperrors.Is(err, apperrors.ErrNoTrades) {
		t.Fatalf("expected ErrNoTrades, got %v", err)
	}
}
