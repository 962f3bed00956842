package inference

import (
	"context"
	"encoding/json"
	"strings"

	"trading-journal/internal/analytics"
	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

const summarySystemPrompt = `You are a trading-performance reviewer. Given journal
metrics, write a short plain-text summary: overall performance, the
strongest session and grade, and one concrete observation. No markdown,
no preamble, at most five sentences.`

// Summarizer produces a narrative summary of an analysis result. This is
// presentation output, so unlike the column mapper the response is plain
// text rather than schema JSON.
type Summarizer struct {
	client Client
}

// NewSummarizer creates an LLM-backed metrics summarizer.
func NewSummarizer(client Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize asks the model for a narrative over the formatted metrics.
func (s *Summarizer) Summarize(ctx context.Context, result *models.AnalysisResult) (string, error) {
	payload, err := json.Marshal(struct {
		Metrics models.FormattedMetrics `json:"metrics"`
	}{
		Metrics: analytics.FormatMetrics(result.Metrics),
	})
	if err != nil {
		return "", apperrors.NewInferenceError("summary", "encoding metrics", err)
	}

	text, err := s.client.CompleteWithSystem(ctx, summarySystemPrompt, string(payload))
	if err != nil {
		return "", apperrors.NewInferenceError("summary", "model call failed", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.NewInferenceError("summary", "empty model response", nil)
	}
	return text, nil
}
