package domain

import (
	"math"
	"sort"
	"time"
)

// PriceTable is a date-by-ticker table of daily closing prices. The date
// index is shared by every column (outer join of all fetched series) and is
// strictly ascending. Missing cells hold NaN, which propagates through the
// return arithmetic the same way nulls do in the snapshot file.
type PriceTable struct {
	Dates   []time.Time
	Symbols []string
	columns map[string][]float64
}

// NewPriceTable creates an empty table over the given date index. Every
// requested symbol gets a column, initially all-NaN, so a symbol the provider
// knows nothing about still appears in the output.
func NewPriceTable(dates []time.Time, symbols []string) *PriceTable {
	t := &PriceTable{
		Dates:   dates,
		Symbols: symbols,
		columns: make(map[string][]float64, len(symbols)),
	}
	for _, s := range symbols {
		col := make([]float64, len(dates))
		for i := range col {
			col[i] = math.NaN()
		}
		t.columns[s] = col
	}
	return t
}

// Day normalizes a timestamp to its UTC trading date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Set writes one close price; dates outside the index are ignored.
func (t *PriceTable) Set(symbol string, date time.Time, close float64) {
	col, ok := t.columns[symbol]
	if !ok {
		return
	}
	if i := t.dateIndex(date); i >= 0 {
		col[i] = close
	}
}

func (t *PriceTable) dateIndex(date time.Time) int {
	d := Day(date)
	i := sort.Search(len(t.Dates), func(i int) bool { return !t.Dates[i].Before(d) })
	if i < len(t.Dates) && t.Dates[i].Equal(d) {
		return i
	}
	return -1
}

// At returns the close for symbol at row i, or NaN.
func (t *PriceTable) At(symbol string, i int) float64 {
	col, ok := t.columns[symbol]
	if !ok || i < 0 || i >= len(col) {
		return math.NaN()
	}
	return col[i]
}

// Rows reports the length of the date index.
func (t *PriceTable) Rows() int { return len(t.Dates) }

// FromEnd returns the close `offset` rows back from the last row (offset 1 is
// the last row, 2 the one before, matching the negative indexing the summary
// offsets are defined in). It returns nil when the table is shorter than the
// offset or the cell is NaN, so short histories null out instead of failing.
func (t *PriceTable) FromEnd(symbol string, offset int) *float64 {
	if offset <= 0 || offset > len(t.Dates) {
		return nil
	}
	v := t.At(symbol, len(t.Dates)-offset)
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Max returns the column-wise maximum over the full history, nil for an
// all-NaN column.
func (t *PriceTable) Max(symbol string) *float64 {
	return t.rangeMax(symbol, 0, len(t.Dates))
}

// TrailingMax returns the maximum over the last n rows.
func (t *PriceTable) TrailingMax(symbol string, n int) *float64 {
	return t.rangeMax(symbol, t.trailingStart(n), len(t.Dates))
}

// TrailingMin returns the minimum over the last n rows.
func (t *PriceTable) TrailingMin(symbol string, n int) *float64 {
	start := t.trailingStart(n)
	var min *float64
	col := t.columns[symbol]
	for i := start; i < len(col); i++ {
		v := col[i]
		if math.IsNaN(v) {
			continue
		}
		if min == nil || v < *min {
			m := v
			min = &m
		}
	}
	return min
}

func (t *PriceTable) trailingStart(n int) int {
	start := len(t.Dates) - n
	if start < 0 {
		start = 0
	}
	return start
}

func (t *PriceTable) rangeMax(symbol string, start, end int) *float64 {
	var max *float64
	col := t.columns[symbol]
	for i := start; i < end && i < len(col); i++ {
		v := col[i]
		if math.IsNaN(v) {
			continue
		}
		if max == nil || v > *max {
			m := v
			max = &m
		}
	}
	return max
}

// ForwardFill carries the last known close forward through NaN gaps, per
// column. Leading NaNs before a ticker's first trade date stay NaN.
func (t *PriceTable) ForwardFill() {
	for _, col := range t.columns {
		last := math.NaN()
		for i, v := range col {
			if math.IsNaN(v) {
				col[i] = last
			} else {
				last = v
			}
		}
	}
}

// TrimOnOrAfter drops every row dated on or after day, so a partially formed
// current session never reaches the aggregator.
func (t *PriceTable) TrimOnOrAfter(day time.Time) {
	d := Day(day)
	cut := sort.Search(len(t.Dates), func(i int) bool { return !t.Dates[i].Before(d) })
	if cut == len(t.Dates) {
		return
	}
	t.Dates = t.Dates[:cut]
	for s, col := range t.columns {
		t.columns[s] = col[:cut]
	}
}

// Slice returns a copy restricted to dates on or after from and to the given
// symbols (unknown symbols yield all-NaN columns). Used by the charting API.
func (t *PriceTable) Slice(from time.Time, symbols []string) *PriceTable {
	d := Day(from)
	start := sort.Search(len(t.Dates), func(i int) bool { return !t.Dates[i].Before(d) })
	dates := append([]time.Time(nil), t.Dates[start:]...)
	out := NewPriceTable(dates, symbols)
	for _, s := range symbols {
		src, ok := t.columns[s]
		if !ok {
			continue
		}
		copy(out.columns[s], src[start:])
	}
	return out
}

// Column returns a copy of one column; nil for an unknown symbol.
func (t *PriceTable) Column(symbol string) []float64 {
	col, ok := t.columns[symbol]
	if !ok {
		return nil
	}
	return append([]float64(nil), col...)
}
