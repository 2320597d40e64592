package screener

import (
	"fmt"
	"sort"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
)

// FilterOp is a user-facing filter condition on a numeric summary column.
type FilterOp string

const (
	OpEq FilterOp = "="
	OpGE FilterOp = ">="
	OpLE FilterOp = "<="
)

// Filter returns the rows whose named numeric column satisfies op against
// value, preserving all columns. Rows with a null cell in the column never
// match. Unknown columns and operators are an error so the caller can reject
// bad query input.
func Filter(rows []domain.SummaryRow, column string, op FilterOp, value float64) ([]domain.SummaryRow, error) {
	switch op {
	case OpEq, OpGE, OpLE:
	default:
		return nil, fmt.Errorf("unsupported filter condition %q", op)
	}
	if !numericColumn(column) {
		return nil, fmt.Errorf("unsupported filter column %q", column)
	}

	out := make([]domain.SummaryRow, 0, len(rows))
	for _, row := range rows {
		v, ok := row.NumericColumn(column)
		if !ok {
			continue
		}
		keep := false
		switch op {
		case OpEq:
			keep = v == value
		case OpGE:
			keep = v >= value
		case OpLE:
			keep = v <= value
		}
		if keep {
			out = append(out, row)
		}
	}
	return out, nil
}

func numericColumn(name string) bool {
	switch name {
	case "Sector", "symbol", "shortName":
		return false
	}
	for _, c := range domain.SummaryColumns {
		if c == name {
			return true
		}
	}
	return false
}

// FilterSector returns the rows belonging to one sector.
func FilterSector(rows []domain.SummaryRow, sector string) []domain.SummaryRow {
	out := make([]domain.SummaryRow, 0, len(rows))
	for _, row := range rows {
		if row.Sector == sector {
			out = append(out, row)
		}
	}
	return out
}

// Sectors returns the distinct sectors present in the summary, sorted.
func Sectors(rows []domain.SummaryRow) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.Sector != "" {
			seen[row.Sector] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
