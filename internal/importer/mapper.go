package importer

import (
	"context"
	"strings"
)

// Canonical field names used by column mappings.
const (
	FieldDate       = "date"
	FieldPair       = "pair"
	FieldLotSize    = "lotSize"
	FieldPosition   = "position"
	FieldStatus     = "status"
	FieldPnL        = "pnl"
	FieldCommission = "commission"
	FieldSession    = "session"
	FieldBias       = "bias"
	FieldConfirmSMT = "confirmSmt"
	FieldNewsImpact = "newsImpact"
	FieldEmotion    = "emotion"
	FieldGrade      = "grade"
	FieldNotes      = "notes"
)

// CanonicalFields lists every mappable canonical field.
var CanonicalFields = []string{
	FieldDate, FieldPair, FieldLotSize, FieldPosition, FieldStatus,
	FieldPnL, FieldCommission, FieldSession, FieldBias, FieldConfirmSMT,
	FieldNewsImpact, FieldEmotion, FieldGrade, FieldNotes,
}

// Mapping associates each canonical field with the raw column name that
// feeds it. Fields with no usable column are absent from the map.
type Mapping map[string]string

// Mapper resolves arbitrary column names to canonical fields. The
// deterministic synonym table is the default; an LLM-delegated mapper
// implements the same interface behind the inference boundary.
type Mapper interface {
	MapColumns(ctx context.Context, headers []string, rows []RawRow) (Mapping, error)
}

// synonyms maps compacted header tokens to canonical fields. Headers are
// compacted by lowercasing and stripping every non-alphanumeric rune, so
// "P&L", "p/l" and "P L" all land on "pl".
var synonyms = map[string]string{
	"date": FieldDate, "day": FieldDate, "tradedate": FieldDate,
	"entrydate": FieldDate, "datetime": FieldDate, "opened": FieldDate,
	"time": FieldDate,

	"pair": FieldPair, "symbol": FieldPair, "instrument": FieldPair,
	"ticker": FieldPair, "market": FieldPair, "asset": FieldPair,
	"currencypair": FieldPair,

	"lotsize": FieldLotSize, "lots": FieldLotSize, "lot": FieldLotSize,
	"size": FieldLotSize, "quantity": FieldLotSize, "qty": FieldLotSize,
	"volume": FieldLotSize, "positionsize": FieldLotSize,

	"position": FieldPosition, "side": FieldPosition, "direction": FieldPosition,
	"longshort": FieldPosition, "buysell": FieldPosition,

	"status": FieldStatus, "outcome": FieldStatus, "result": FieldStatus,
	"winloss": FieldStatus, "wl": FieldStatus,

	"pnl": FieldPnL, "pl": FieldPnL, "profit": FieldPnL,
	"profitloss": FieldPnL, "netpnl": FieldPnL, "netpl": FieldPnL,
	"grosspnl": FieldPnL, "gain": FieldPnL, "gainloss": FieldPnL,
	"realizedpnl": FieldPnL,

	"commission": FieldCommission, "commissions": FieldCommission,
	"fee": FieldCommission, "fees": FieldCommission, "cost": FieldCommission,
	"costs": FieldCommission, "brokerage": FieldCommission,

	"session": FieldSession, "marketsession": FieldSession,
	"killzone": FieldSession, "timeofday": FieldSession,

	"bias": FieldBias, "trend": FieldBias, "marketbias": FieldBias,
	"htfbias": FieldBias, "dailybias": FieldBias,

	"smt": FieldConfirmSMT, "confirmsmt": FieldConfirmSMT,
	"smtconfirmed": FieldConfirmSMT, "smtdivergence": FieldConfirmSMT,

	"news": FieldNewsImpact, "newsimpact": FieldNewsImpact,
	"rednews": FieldNewsImpact, "impact": FieldNewsImpact,

	"emotion": FieldEmotion, "emotions": FieldEmotion, "feeling": FieldEmotion,
	"mood": FieldEmotion, "psychology": FieldEmotion, "mentalstate": FieldEmotion,

	"grade": FieldGrade, "rating": FieldGrade, "setupgrade": FieldGrade,
	"quality": FieldGrade, "score": FieldGrade,

	"notes": FieldNotes, "note": FieldNotes, "comment": FieldNotes,
	"comments": FieldNotes, "description": FieldNotes, "remarks": FieldNotes,
}

// SynonymMapper is the deterministic column mapper: a fixed synonym table
// over compacted header names. It inspects headers only, never row values.
type SynonymMapper struct{}

// NewSynonymMapper creates the deterministic mapper.
func NewSynonymMapper() *SynonymMapper {
	return &SynonymMapper{}
}

// MapColumns resolves headers against the synonym table. The first header
// matching a canonical field wins; later duplicates are ignored so each
// field is fed by at most one column.
func (m *SynonymMapper) MapColumns(_ context.Context, headers []string, _ []RawRow) (Mapping, error) {
	mapping := make(Mapping)
	for _, h := range headers {
		field, ok := synonyms[compactHeader(h)]
		if !ok {
			continue
		}
		if _, taken := mapping[field]; taken {
			continue
		}
		mapping[field] = h
	}
	return mapping, nil
}

// compactHeader lowercases a header and strips every non-alphanumeric rune.
func compactHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
