// Package analytics computes aggregate statistics and chart-ready series
// from a collection of canonical trades.
package analytics

import (
	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// ComputeMetrics reduces a trade collection into numeric summary
// statistics. It is safe on empty input: rates are 0, the best session
// and grade are empty. Ties on session or grade P&L resolve to the first
// entry in canonical enumeration order.
func ComputeMetrics(trades []models.Trade) models.Metrics {
	m := models.Metrics{
		TotalTrades: len(trades),
	}

	wins := 0
	sessionPnL := make(map[models.Session]float64, len(models.Sessions))
	gradePnL := make(map[models.Grade]float64, len(models.Grades))
	gradeSeen := make(map[models.Grade]bool, len(models.Grades))

	for _, t := range trades {
		net := t.NetPnL()
		m.TotalNetPnL += net
		m.TotalCommissions += t.Commission

		if t.PnL > 0 {
			m.TotalProfit += t.PnL
		} else if t.PnL < 0 {
			m.TotalLoss += -t.PnL
		}

		if t.Status == models.StatusWin {
			wins++
		}

		sessionPnL[t.Session] += net
		gradePnL[t.Grade] += net
		gradeSeen[t.Grade] = true
	}

	if len(trades) > 0 {
		m.WinRate = float64(wins) / float64(len(trades)) * 100
	}

	m.MostProfitableSession = bestSession(sessionPnL)
	m.BestPerformingGrade = bestGrade(gradePnL, gradeSeen)

	return m
}

// bestSession picks the session maximizing net P&L, walking the canonical
// order so exact ties keep the first-enumerated session.
func bestSession(pnl map[models.Session]float64) models.Session {
	if len(pnl) == 0 {
		return ""
	}
	best := models.Sessions[0]
	for _, s := range models.Sessions[1:] {
		if pnl[s] > pnl[best] {
			best = s
		}
	}
	return best
}

// bestGrade picks the grade maximizing net P&L among grades actually
// present, in canonical A to F order.
func bestGrade(pnl map[models.Grade]float64, seen map[models.Grade]bool) models.Grade {
	var best models.Grade
	for _, g := range models.Grades {
		if !seen[g] {
			continue
		}
		if best == "" || pnl[g] > pnl[best] {
			best = g
		}
	}
	return best
}

// FormatMetrics layers presentation formatting over numeric metrics:
// currency strings for monetary values, a % suffix for rates.
func FormatMetrics(m models.Metrics) models.FormattedMetrics {
	return models.FormattedMetrics{
		TotalNetPnL:           utils.FormatCurrency(m.TotalNetPnL),
		TotalProfit:           utils.FormatCurrency(m.TotalProfit),
		TotalLoss:             utils.FormatCurrency(m.TotalLoss),
		WinRate:               utils.FormatWinRate(m.WinRate),
		TotalTrades:           m.TotalTrades,
		TotalCommissions:      utils.FormatCurrency(m.TotalCommissions),
		MostProfitableSession: string(m.MostProfitableSession),
		BestPerformingGrade:   string(m.BestPerformingGrade),
	}
}
