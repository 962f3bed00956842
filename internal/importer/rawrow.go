// Package importer normalizes heterogeneous raw trade rows into the
// canonical trade model.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	apperrors "trading-journal/internal/errors"
)

// RawRow is one spreadsheet row: a mapping from arbitrary column names to
// arbitrary scalar values. The normalizer is the single boundary that
// narrows this open shape into the canonical model.
type RawRow map[string]interface{}

// String returns the value under key as a trimmed string, with "" for
// missing or nil values.
func (r RawRow) String(key string) string {
	if key == "" {
		return ""
	}
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", s), "0"), ".")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

// ReadCSVFile reads a CSV workbook into an ordered sequence of raw rows.
// The first record is treated as the header row. Header order is returned
// separately because map iteration would lose it.
func ReadCSVFile(path string) ([]string, []RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewImportError(path, "cannot open file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperrors.NewImportError(path, "cannot parse file", err)
	}
	if len(records) == 0 {
		return nil, nil, apperrors.NewImportError(path, "empty file", apperrors.ErrNoRows)
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
