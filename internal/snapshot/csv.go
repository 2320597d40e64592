// Package snapshot persists the aggregated summary table to a flat CSV file.
// The file is overwritten on every successful run; there is no schema
// versioning and no append history.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
)

// WriteCSV writes the summary rows to path in the fixed column order, one
// row per ticker. Null cells render as empty strings, the same way the
// dashboard's previous snapshot files did.
func WriteCSV(path string, rows []domain.SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Leading unnamed column is the ticker index.
	header := append([]string{""}, domain.SummaryColumns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Ticker)
		for _, column := range domain.SummaryColumns {
			record = append(record, cell(row, column))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write snapshot row for %s: %w", row.Ticker, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

func cell(row domain.SummaryRow, column string) string {
	if s, ok := row.StringColumn(column); ok {
		return s
	}
	if v, ok := row.NumericColumn(column); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
