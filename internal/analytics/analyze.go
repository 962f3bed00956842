package analytics

import (
	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// DefaultMinTrades is the minimum collection size before analysis runs.
const DefaultMinTrades = 3

// Analyze composes the metrics aggregator and the series builders into a
// single result object. The result is computed from scratch on every call
// and published all-or-nothing: any failure yields a nil result.
func Analyze(trades []models.Trade, minTrades int) (*models.AnalysisResult, error) {
	if minTrades <= 0 {
		minTrades = DefaultMinTrades
	}
	if len(trades) == 0 {
		return nil, apperrors.ErrNoTrades
	}
	if len(trades) < minTrades {
		return nil, apperrors.Wrapf(apperrors.ErrTooFewTrades,
			"have %d trades, need %d", len(trades), minTrades)
	}

	return &models.AnalysisResult{
		Metrics:             ComputeMetrics(trades),
		CumulativePnL:       BuildCumulativePnL(trades),
		OutcomeDistribution: BuildOutcomeDistribution(trades),
		SessionPnL:          BuildSessionPnL(trades),
		GradePnL:            BuildGradePnL(trades),
	}, nil
}
