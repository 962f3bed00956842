package analytics

import (
	"trading-journal/internal/models"
)

// BuildCumulativePnL walks trades in existing sequence order and emits one
// point per trade: the date as label, the running net P&L sum as data.
// Trades sharing a date still contribute separate points.
func BuildCumulativePnL(trades []models.Trade) models.Series {
	s := models.Series{
		Labels: make([]string, 0, len(trades)),
		Data:   make([]float64, 0, len(trades)),
	}
	var running float64
	for _, t := range trades {
		running += t.NetPnL()
		s.Labels = append(s.Labels, t.Date)
		s.Data = append(s.Data, running)
	}
	return s
}

// BuildOutcomeDistribution counts trades per outcome. The series shape is
// fixed at Wins/Losses/Breakeven regardless of which outcomes occur.
func BuildOutcomeDistribution(trades []models.Trade) models.Series {
	var wins, losses, breakeven float64
	for _, t := range trades {
		switch t.Status {
		case models.StatusWin:
			wins++
		case models.StatusLoss:
			losses++
		case models.StatusBreakeven:
			breakeven++
		}
	}
	return models.Series{
		Labels: []string{"Wins", "Losses", "Breakeven"},
		Data:   []float64{wins, losses, breakeven},
	}
}

// BuildSessionPnL sums net P&L per session over the fixed session order,
// reporting 0 for sessions with no trades.
func BuildSessionPnL(trades []models.Trade) models.Series {
	pnl := make(map[models.Session]float64, len(models.Sessions))
	for _, t := range trades {
		pnl[t.Session] += t.NetPnL()
	}
	s := models.Series{
		Labels: make([]string, 0, len(models.Sessions)),
		Data:   make([]float64, 0, len(models.Sessions)),
	}
	for _, session := range models.Sessions {
		s.Labels = append(s.Labels, string(session))
		s.Data = append(s.Data, pnl[session])
	}
	return s
}

// BuildGradePnL sums net P&L per grade. Labels cover only grades actually
// present, in canonical A to F order; that keeps repeated exports of the
// same journal stable under row reordering.
func BuildGradePnL(trades []models.Trade) models.Series {
	pnl := make(map[models.Grade]float64, len(models.Grades))
	seen := make(map[models.Grade]bool, len(models.Grades))
	for _, t := range trades {
		pnl[t.Grade] += t.NetPnL()
		seen[t.Grade] = true
	}
	var s models.Series
	for _, g := range models.Grades {
		if !seen[g] {
			continue
		}
		s.Labels = append(s.Labels, string(g))
		s.Data = append(s.Data, pnl[g])
	}
	return s
}
