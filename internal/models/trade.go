// Package models provides domain models for the trading journal.
package models

import "strings"

// Position represents the direction of a trade.
type Position string

const (
	PositionLong  Position = "long"
	PositionShort Position = "short"
)

// Status represents the outcome of a trade.
type Status string

const (
	StatusWin       Status = "win"
	StatusLoss      Status = "loss"
	StatusBreakeven Status = "breakeven"
)

// Session represents the market-hours window during which a trade was taken.
type Session string

const (
	SessionAsia    Session = "asia"
	SessionLondon  Session = "london"
	SessionNewYork Session = "new york"
)

// Sessions lists all sessions in canonical order. Aggregation and series
// construction iterate in this order, and ties resolve to the first entry.
var Sessions = []Session{SessionAsia, SessionLondon, SessionNewYork}

// Bias represents the directional bias behind a trade.
type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasBearish Bias = "bearish"
	BiasRanging Bias = "ranging"
)

// NewsImpact represents the news environment around a trade.
type NewsImpact string

const (
	NewsHigh   NewsImpact = "high"
	NewsMedium NewsImpact = "medium"
	NewsLow    NewsImpact = "low"
	NewsNone   NewsImpact = "none"
)

// Grade represents a self-assigned quality grade for a trade.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists all grades in canonical order. Ties resolve to the first entry.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Trade represents a single journaled trade in canonical form.
type Trade struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Pair       string     `json:"pair"`
	LotSize    float64    `json:"lotSize"`
	Position   Position   `json:"position"`
	Status     Status     `json:"status"`
	PnL        float64    `json:"pnl"`
	Commission float64    `json:"commission"`
	Session    Session    `json:"session"`
	Bias       Bias       `json:"bias"`
	ConfirmSMT bool       `json:"confirmSmt"`
	NewsImpact NewsImpact `json:"newsImpact"`
	Emotion    string     `json:"emotion"`
	Grade      Grade      `json:"grade"`
	Notes      string     `json:"notes"`
}

// NetPnL returns gross P&L minus commission.
func (t Trade) NetPnL() float64 {
	return t.PnL - t.Commission
}

// ParsePosition coerces free-form input to a Position.
// Unrecognized input defaults to long.
func ParsePosition(s string) Position {
	switch normalizeEnum(s) {
	case "long", "buy", "l", "b":
		return PositionLong
	case "short", "sell", "s":
		return PositionShort
	}
	return PositionLong
}

// ParseStatus coerces free-form input to a Status. The second return value
// reports whether the input was recognized, so callers can fall back to
// deriving the outcome from the P&L sign instead.
func ParseStatus(s string) (Status, bool) {
	switch normalizeEnum(s) {
	case "win", "won", "w", "profit", "winner":
		return StatusWin, true
	case "loss", "lost", "lose", "l", "loser":
		return StatusLoss, true
	case "breakeven", "break even", "be", "flat", "scratch":
		return StatusBreakeven, true
	}
	return StatusBreakeven, false
}

// StatusForPnL derives an outcome from the sign of a P&L value.
func StatusForPnL(pnl float64) Status {
	switch {
	case pnl > 0:
		return StatusWin
	case pnl < 0:
		return StatusLoss
	}
	return StatusBreakeven
}

// ParseSession coerces free-form input to a Session.
// Unrecognized input defaults to london.
func ParseSession(s string) Session {
	switch normalizeEnum(s) {
	case "asia", "asian", "tokyo", "sydney":
		return SessionAsia
	case "london", "ldn", "europe", "frankfurt":
		return SessionLondon
	case "new york", "newyork", "ny", "us", "nyc", "america":
		return SessionNewYork
	}
	return SessionLondon
}

// ParseBias coerces free-form input to a Bias.
// Unrecognized input defaults to ranging.
func ParseBias(s string) Bias {
	switch normalizeEnum(s) {
	case "bullish", "bull", "up", "uptrend":
		return BiasBullish
	case "bearish", "bear", "down", "downtrend":
		return BiasBearish
	case "ranging", "range", "sideways", "neutral", "chop", "choppy":
		return BiasRanging
	}
	return BiasRanging
}

// ParseNewsImpact coerces free-form input to a NewsImpact.
// Unrecognized input defaults to none.
func ParseNewsImpact(s string) NewsImpact {
	switch normalizeEnum(s) {
	case "high", "red", "major":
		return NewsHigh
	case "medium", "med", "orange", "moderate":
		return NewsMedium
	case "low", "yellow", "minor":
		return NewsLow
	case "none", "no news", "quiet":
		return NewsNone
	}
	return NewsNone
}

// ParseGrade coerces free-form input to a Grade.
// Unrecognized input defaults to C.
func ParseGrade(s string) Grade {
	// Minus suffixes need no cases here: normalizeEnum turns "-" into a
	// space, so "A-" arrives as "a".
	switch normalizeEnum(s) {
	case "a", "a+":
		return GradeA
	case "b", "b+":
		return GradeB
	case "c", "c+":
		return GradeC
	case "d", "d+":
		return GradeD
	case "f", "e":
		return GradeF
	}
	return GradeC
}

// ParseConfirmSMT coerces free-form input to the SMT confirmation flag.
func ParseConfirmSMT(s string) bool {
	switch normalizeEnum(s) {
	case "true", "yes", "y", "1", "confirmed", "smt":
		return true
	}
	return false
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}
