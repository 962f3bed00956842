package models

// Metrics holds the numeric aggregate statistics for a trade collection.
// Monetary values stay raw here; formatting happens at the presentation layer.
type Metrics struct {
	TotalNetPnL           float64 `json:"totalNetPnl"`
	TotalProfit           float64 `json:"totalProfit"`
	TotalLoss             float64 `json:"totalLoss"` // positive magnitude
	WinRate               float64 `json:"winRate"`   // percentage, 0-100
	TotalTrades           int     `json:"totalTrades"`
	TotalCommissions      float64 `json:"totalCommissions"`
	MostProfitableSession Session `json:"mostProfitableSession"`
	BestPerformingGrade   Grade   `json:"bestPerformingGrade"`
}

// FormattedMetrics is the presentation view of Metrics: monetary values as
// currency strings, percentages with a % suffix.
type FormattedMetrics struct {
	TotalNetPnL           string `json:"totalNetPnl"`
	TotalProfit           string `json:"totalProfit"`
	TotalLoss             string `json:"totalLoss"`
	WinRate               string `json:"winRate"`
	TotalTrades           int    `json:"totalTrades"`
	TotalCommissions      string `json:"totalCommissions"`
	MostProfitableSession string `json:"mostProfitableSession"`
	BestPerformingGrade   string `json:"bestPerformingGrade"`
}

// Series is a chart-ready pair of parallel label and data sequences.
// Labels and Data are always the same length.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// AnalysisResult is the value object produced by one analysis run. It is
// recomputed from scratch each time and replaced wholesale, never patched.
type AnalysisResult struct {
	Metrics             Metrics `json:"metrics"`
	CumulativePnL       Series  `json:"cumulativePnlData"`
	OutcomeDistribution Series  `json:"outcomeDistributionData"`
	SessionPnL          Series  `json:"sessionPnlData"`
	GradePnL            Series  `json:"gradePnlData"`
}
