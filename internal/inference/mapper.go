package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/importer"
)

// DefaultSampleRows bounds how many raw rows are serialized into the
// mapping prompt for cost and latency control.
const DefaultSampleRows = 100

const mapperSystemPrompt = `You map spreadsheet columns of a trading journal to a fixed schema.
Respond with a single JSON object and nothing else. Keys are canonical field
names, values are the exact column names from the input. Omit fields that
have no matching column. Never invent column names.`

// ColumnMapper implements importer.Mapper by delegating the fuzzy
// header-to-field mapping to an external model. The response must be a
// JSON object matching the canonical schema exactly; anything else fails
// the whole mapping, with no partial acceptance.
type ColumnMapper struct {
	client     Client
	sampleRows int
}

// NewColumnMapper creates an LLM-backed column mapper.
func NewColumnMapper(client Client, sampleRows int) *ColumnMapper {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}
	return &ColumnMapper{
		client:     client,
		sampleRows: sampleRows,
	}
}

// MapColumns asks the model for a header mapping over a bounded row sample.
func (m *ColumnMapper) MapColumns(ctx context.Context, headers []string, rows []importer.RawRow) (importer.Mapping, error) {
	if len(rows) > m.sampleRows {
		rows = rows[:m.sampleRows]
	}

	prompt, err := buildMapperPrompt(headers, rows)
	if err != nil {
		return nil, apperrors.NewInferenceError("column-mapping", "building prompt", err)
	}

	raw, err := m.client.CompleteWithSystem(ctx, mapperSystemPrompt, prompt)
	if err != nil {
		return nil, apperrors.NewInferenceError("column-mapping", "model call failed", err)
	}

	mapping, err := parseMapping(raw, headers)
	if err != nil {
		return nil, apperrors.NewInferenceError("column-mapping", "malformed model response", err)
	}
	return mapping, nil
}

func buildMapperPrompt(headers []string, sample []importer.RawRow) (string, error) {
	rows := make([]map[string]string, 0, len(sample))
	for _, r := range sample {
		row := make(map[string]string, len(headers))
		for _, h := range headers {
			row[h] = r.String(h)
		}
		rows = append(rows, row)
	}

	sampleJSON, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Canonical fields: %s\n\n", strings.Join(importer.CanonicalFields, ", "))
	fmt.Fprintf(&b, "Columns: %s\n\n", strings.Join(headers, ", "))
	fmt.Fprintf(&b, "Sample rows (%d):\n%s\n", len(rows), sampleJSON)
	return b.String(), nil
}

// parseMapping decodes and validates the model response. Unknown canonical
// fields or column names not present in the input are hard failures.
func parseMapping(raw string, headers []string) (importer.Mapping, error) {
	raw = stripCodeFence(raw)

	var decoded map[string]string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}

	known := make(map[string]bool, len(importer.CanonicalFields))
	for _, f := range importer.CanonicalFields {
		known[f] = true
	}
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	mapping := make(importer.Mapping, len(decoded))
	for field, column := range decoded {
		if !known[field] {
			return nil, fmt.Errorf("unknown canonical field %q", field)
		}
		if !present[column] {
			return nil, fmt.Errorf("column %q not in input", column)
		}
		mapping[field] = column
	}
	return mapping, nil
}

// stripCodeFence removes a markdown code fence if the model wrapped its
// JSON in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
