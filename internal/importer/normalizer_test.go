package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(NewSynonymMapper(), zerolog.Nop())
}

func TestNormalizeEmptyInput(t *testing.T) {
	_, err := newTestNormalizer().Normalize(context.Background(), []string{"Date", "PnL"}, nil)
	if !errors.Is(err, apperrors.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestNormalizePnLHeaderSynonyms(t *testing.T) {
	headers := []string{"pnl", "profit", "P&L", "Net PnL", "P/L", "Realized PnL"}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			rows := []RawRow{{header: "150.25"}}
			trades, err := newTestNormalizer().Normalize(context.Background(), []string{header}, rows)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(trades) != 1 {
				t.Fatalf("expected 1 trade, got %d", len(trades))
			}
			if trades[0].PnL != 150.25 {
				t.Errorf("PnL = %v, want 150.25", trades[0].PnL)
			}
		})
	}
}

func TestNormalizeSkipsRowsWithoutPnL(t *testing.T) {
	headers := []string{"Date", "Symbol", "PnL"}
	rows := []RawRow{
		{"Date": "2024-03-01", "Symbol": "eurusd", "PnL": "100"},
		{"Date": "2024-03-02", "Symbol": "gbpusd", "PnL": ""},
		{"Date": "2024-03-03", "Symbol": "xauusd", "PnL": "not a number"},
		{"Date": "2024-03-04", "Symbol": "usdjpy", "PnL": "-42.5"},
	}

	trades, err := newTestNormalizer().Normalize(context.Background(), headers, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	// Input order preserved across the skipped rows.
	if trades[0].Pair != "EURUSD" || trades[1].Pair != "USDJPY" {
		t.Errorf("order not preserved: %q, %q", trades[0].Pair, trades[1].Pair)
	}
	if trades[1].PnL != -42.5 {
		t.Errorf("PnL = %v, want -42.5", trades[1].PnL)
	}
}

func TestNormalizeAllRowsSkipped(t *testing.T) {
	rows := []RawRow{
		{"PnL": ""},
		{"PnL": "n/a"},
	}
	trades, err := newTestNormalizer().Normalize(context.Background(), []string{"PnL"}, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("expected 0 trades, got %d", len(trades))
	}
}

func TestNormalizeFieldCoercion(t *testing.T) {
	headers := []string{"Date", "Symbol", "Lots", "Side", "Outcome", "P&L", "Fees", "Session", "Bias", "SMT", "News", "Grade"}
	rows := []RawRow{{
		"Date":    "03/15/2024",
		"Symbol":  "eurusd",
		"Lots":    "-2.5",
		"Side":    "Buy",
		"Outcome": "WIN",
		"P&L":     "$1,250.75",
		"Fees":    "(12.50)",
		"Session": "New-York",
		"Bias":    "BULLISH",
		"SMT":     "yes",
		"News":    "High",
		"Grade":   "a",
	}}

	trades, err := newTestNormalizer().Normalize(context.Background(), headers, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}

	trade := trades[0]
	if trade.Date != "2024-03-15" {
		t.Errorf("Date = %q, want 2024-03-15", trade.Date)
	}
	if trade.Pair != "EURUSD" {
		t.Errorf("Pair = %q, want EURUSD", trade.Pair)
	}
	if trade.LotSize != 2.5 {
		t.Errorf("LotSize = %v, want 2.5 (negatives clamped)", trade.LotSize)
	}
	if trade.Position != models.PositionLong {
		t.Errorf("Position = %q, want long", trade.Position)
	}
	if trade.Status != models.StatusWin {
		t.Errorf("Status = %q, want win", trade.Status)
	}
	if trade.PnL != 1250.75 {
		t.Errorf("PnL = %v, want 1250.75", trade.PnL)
	}
	if trade.Commission != 12.50 {
		t.Errorf("Commission = %v, want 12.50 (parens then abs)", trade.Commission)
	}
	if trade.Session != models.SessionNewYork {
		t.Errorf("Session = %q, want new york", trade.Session)
	}
	if trade.Bias != models.BiasBullish {
		t.Errorf("Bias = %q, want bullish", trade.Bias)
	}
	if !trade.ConfirmSMT {
		t.Error("ConfirmSMT = false, want true")
	}
	if trade.NewsImpact != models.NewsHigh {
		t.Errorf("NewsImpact = %q, want high", trade.NewsImpact)
	}
	if trade.Grade != models.GradeA {
		t.Errorf("Grade = %q, want A", trade.Grade)
	}
}

func TestNormalizeDefaultsForMissingColumns(t *testing.T) {
	rows := []RawRow{{"PnL": "-300"}}
	trades, err := newTestNormalizer().Normalize(context.Background(), []string{"PnL"}, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	trade := trades[0]

	if trade.Pair != "UNKNOWN" {
		t.Errorf("Pair = %q, want UNKNOWN", trade.Pair)
	}
	if trade.Date == "" {
		t.Error("Date should default to today, got empty")
	}
	if trade.Position != models.PositionLong {
		t.Errorf("Position = %q, want long default", trade.Position)
	}
	// No outcome column: status falls back to the P&L sign.
	if trade.Status != models.StatusLoss {
		t.Errorf("Status = %q, want loss from negative P&L", trade.Status)
	}
	if trade.Session != models.SessionLondon {
		t.Errorf("Session = %q, want london default", trade.Session)
	}
	if trade.Bias != models.BiasRanging {
		t.Errorf("Bias = %q, want ranging default", trade.Bias)
	}
	if trade.NewsImpact != models.NewsNone {
		t.Errorf("NewsImpact = %q, want none default", trade.NewsImpact)
	}
	if trade.Grade != models.GradeC {
		t.Errorf("Grade = %q, want C default", trade.Grade)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"100", 100, true},
		{"-42.5", -42.5, true},
		{"+7", 7, true},
		{"$1,250.75", 1250.75, true},
		{"₹1,00,000", 100000, true},
		{"€2 500", 2500, true},
		{"(500)", -500, true},
		{"1_000", 1000, true},
		{"  12.5  ", 12.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"12.5%", 0, false},
		{"--", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.input)
		if ok != tt.ok {
			t.Errorf("parseNumber(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseNumber(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"15-03-2024", "2024-03-15"},
		{"15-Mar-2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
		{"week 12", "week 12"},
	}

	for _, tt := range tests {
		if got := normalizeDate(tt.input); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSynonymMapperFirstMatchWins(t *testing.T) {
	headers := []string{"Net PnL", "Gross PnL", "Symbol"}
	mapping, err := NewSynonymMapper().MapColumns(context.Background(), headers, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mapping[FieldPnL] != "Net PnL" {
		t.Errorf("pnl column = %q, want first match %q", mapping[FieldPnL], "Net PnL")
	}
	if mapping[FieldPair] != "Symbol" {
		t.Errorf("pair column = %q, want Symbol", mapping[FieldPair])
	}
}

func TestSynonymMapperIgnoresUnknownHeaders(t *testing.T) {
	headers := []string{"Screenshot URL", "Setup Tag", "pnl"}
	mapping, err := NewSynonymMapper().MapColumns(context.Background(), headers, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapping) != 1 {
		t.Fatalf("expected 1 mapped field, got %d: %v", len(mapping), mapping)
	}
}
