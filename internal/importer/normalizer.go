package importer

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// Normalizer maps an ordered sequence of raw rows into canonical trades.
// It applies per-field defaulting, never fails a whole import over a bad
// cell, and drops only rows without a usable P&L value. Ids are assigned
// by the caller, not here.
type Normalizer struct {
	mapper Mapper
	logger zerolog.Logger
}

// NewNormalizer creates a normalizer with the given column-mapping strategy.
func NewNormalizer(mapper Mapper, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		mapper: mapper,
		logger: logger,
	}
}

// Normalize converts raw rows into canonical trades, preserving input
// order. Empty input fails fast with ErrNoRows. Rows with no parseable
// P&L are skipped silently; the caller sees only the output count.
func (n *Normalizer) Normalize(ctx context.Context, headers []string, rows []RawRow) ([]models.Trade, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrNoRows
	}

	mapping, err := n.mapper.MapColumns(ctx, headers, rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "mapping columns")
	}

	trades := make([]models.Trade, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		trade, ok := n.normalizeRow(row, mapping)
		if !ok {
			skipped++
			continue
		}
		trades = append(trades, trade)
	}

	n.logger.Debug().
		Int("rows", len(rows)).
		Int("trades", len(trades)).
		Int("skipped", skipped).
		Msg("Normalized import rows")

	return trades, nil
}

// normalizeRow builds one canonical trade from one raw row. The second
// return value is false when the row has no usable P&L and must be skipped.
func (n *Normalizer) normalizeRow(row RawRow, mapping Mapping) (models.Trade, bool) {
	pnl, ok := parseNumber(row.String(mapping[FieldPnL]))
	if !ok {
		return models.Trade{}, false
	}

	trade := models.Trade{
		Date:       normalizeDate(row.String(mapping[FieldDate])),
		Pair:       normalizePair(row.String(mapping[FieldPair])),
		Position:   models.ParsePosition(row.String(mapping[FieldPosition])),
		PnL:        pnl,
		Session:    models.ParseSession(row.String(mapping[FieldSession])),
		Bias:       models.ParseBias(row.String(mapping[FieldBias])),
		ConfirmSMT: models.ParseConfirmSMT(row.String(mapping[FieldConfirmSMT])),
		NewsImpact: models.ParseNewsImpact(row.String(mapping[FieldNewsImpact])),
		Emotion:    row.String(mapping[FieldEmotion]),
		Grade:      models.ParseGrade(row.String(mapping[FieldGrade])),
		Notes:      row.String(mapping[FieldNotes]),
	}

	// Lot size and commission are non-negative; unparseable cells mean 0.
	if lot, ok := parseNumber(row.String(mapping[FieldLotSize])); ok {
		trade.LotSize = math.Abs(lot)
	}
	if comm, ok := parseNumber(row.String(mapping[FieldCommission])); ok {
		trade.Commission = math.Abs(comm)
	}

	// Unrecognized outcome falls back to the P&L sign.
	if status, ok := models.ParseStatus(row.String(mapping[FieldStatus])); ok {
		trade.Status = status
	} else {
		trade.Status = models.StatusForPnL(pnl)
	}

	return trade, true
}

// parseNumber parses a numeric cell after stripping currency symbols,
// thousands separators and surrounding whitespace. Parenthesized values
// are treated as negative. Unparseable input reports ok=false.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		case r == ',', r == '_', r == ' ':
			// thousands separators
		case r == '$', r == '€', r == '£', r == '¥', r == '₹':
			// currency symbols
		default:
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// dateLayouts are tried in order when normalizing date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// normalizeDate coerces a date cell to YYYY-MM-DD. Unparseable non-empty
// values pass through trimmed (they only ever label chart points); an
// empty cell defaults to today.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().Format("2006-01-02")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// normalizePair uppercases the instrument symbol; an empty cell becomes
// UNKNOWN since pair is required to be non-empty.
func normalizePair(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "UNKNOWN"
	}
	return s
}
