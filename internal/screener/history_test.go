package screener

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
)

type mockHistory struct {
	table *domain.PriceTable
	err   error
	calls int
}

func (m *mockHistory) FetchDailyCloses(ctx context.Context, symbols []string, start time.Time) (*domain.PriceTable, error) {
	m.calls++
	return m.table, m.err
}

func gappyTable(symbols []string) *domain.PriceTable {
	dates := []time.Time{
		day(2024, 1, 5), day(2024, 1, 6), day(2024, 1, 7), day(2024, 1, 8), day(2024, 1, 9),
	}
	table := domain.NewPriceTable(dates, symbols)
	for _, s := range symbols {
		table.Set(s, dates[0], 100)
		// weekend gap on rows 1 and 2
		table.Set(s, dates[3], 103)
		table.Set(s, dates[4], 104)
	}
	return table
}

func TestFetchEquityGroupForwardFillsAndTrims(t *testing.T) {
	mock := &mockHistory{table: gappyTable([]string{"AAPL"})}
	h := NewPriceHistory(noopTracer(), mock, day(2024, 1, 1))
	h.now = func() time.Time { return day(2024, 1, 9) } // trading day in progress

	table, err := h.FetchEquityGroup(context.Background(), []string{"AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Rows() != 4 {
		t.Fatalf("rows = %d, want 4 (today's partial row dropped)", table.Rows())
	}
	if got := table.At("AAPL", 1); got != 100 {
		t.Errorf("weekend gap = %v, want forward-filled 100", got)
	}
	if got := table.At("AAPL", 2); got != 100 {
		t.Errorf("weekend gap = %v, want forward-filled 100", got)
	}
}

func TestFetchCryptoKeepsRawGaps(t *testing.T) {
	mock := &mockHistory{table: gappyTable([]string{"BTC-USD"})}
	h := NewPriceHistory(noopTracer(), mock, day(2024, 1, 1))
	h.now = func() time.Time { return day(2024, 1, 10) }

	table, err := h.FetchCrypto(context.Background(), []string{"BTC-USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Rows() != 5 {
		t.Fatalf("rows = %d, want 5", table.Rows())
	}
	if !math.IsNaN(table.At("BTC-USD", 1)) {
		t.Error("crypto table must not forward-fill gaps")
	}
}

func TestFetchHistoryPropagatesBatchFailure(t *testing.T) {
	mock := &mockHistory{err: errors.New("network down")}
	h := NewPriceHistory(noopTracer(), mock, day(2024, 1, 1))

	if _, err := h.FetchEquityGroup(context.Background(), []string{"AAPL"}); err == nil {
		t.Fatal("whole-batch failure must propagate")
	}
}
