package screener

import (
	"math"
	"testing"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// syntheticTable builds an n-row table for the given symbols where row i of
// every column closes at base+i.
func syntheticTable(symbols []string, n int, base float64) *domain.PriceTable {
	dates := make([]time.Time, n)
	start := day(2023, 1, 1)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	table := domain.NewPriceTable(dates, symbols)
	for _, s := range symbols {
		for i := 0; i < n; i++ {
			table.Set(s, dates[i], base+float64(i))
		}
	}
	return table
}

func approx(got *float64, want float64) bool {
	return got != nil && math.Abs(*got-want) < 1e-9
}

func TestBuildSummaryReturnDerivation(t *testing.T) {
	// Two rows: 100 then 110 → 1d_return = 10%.
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 2)}
	table := domain.NewPriceTable(dates, []string{"AAPL"})
	table.Set("AAPL", dates[0], 100)
	table.Set("AAPL", dates[1], 110)

	rows := BuildSummary(table, map[string]domain.FundamentalsRecord{
		"AAPL": {Sector: "Technology", Symbol: "AAPL"},
	})

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if !approx(r.Return1D, 0.10) {
		t.Errorf("1d_return = %v, want 0.10", r.Return1D)
	}
	if !approx(r.LastPrice, 110) || !approx(r.Price1D, 100) {
		t.Errorf("prices = %v / %v", r.LastPrice, r.Price1D)
	}
	// 110 vs ATH 110 → dist_ath exactly 0.
	if !approx(r.DistATH, 0) {
		t.Errorf("dist_ath = %v, want 0", r.DistATH)
	}
	// Only two rows of history: the longer lags null out.
	if r.Price1W != nil || r.Price1M != nil || r.Price1Y != nil {
		t.Error("lags beyond available history must be nil")
	}
	if r.Return1W != nil || r.Return1M != nil || r.Return1Y != nil {
		t.Error("returns over missing lags must be nil, not an error")
	}
	if r.Sector != "Technology" {
		t.Errorf("fundamentals not joined: %+v", r.FundamentalsRecord)
	}
}

func TestBuildSummaryFullHistory(t *testing.T) {
	table := syntheticTable([]string{"AAPL"}, 400, 100)
	rows := BuildSummary(table, nil)

	r := rows[0]
	// last close is 100+399 = 499.
	if !approx(r.LastPrice, 499) {
		t.Fatalf("last_price = %v, want 499", r.LastPrice)
	}
	if !approx(r.Price1D, 498) || !approx(r.Price1W, 492) || !approx(r.Price1M, 469) {
		t.Errorf("short lags = %v / %v / %v", r.Price1D, r.Price1W, r.Price1M)
	}
	if !approx(r.Price6M, 317) || !approx(r.Price1Y, 134) {
		t.Errorf("long lags = %v / %v, want 317 / 134", r.Price6M, r.Price1Y)
	}
	if !approx(r.ATHPrice, 499) {
		t.Errorf("ATH = %v, want 499", r.ATHPrice)
	}
	// Trailing 365 rows start at 100+35 = 135.
	if !approx(r.Year1High, 499) || !approx(r.Year1Low, 135) {
		t.Errorf("1Y range = %v / %v, want 499 / 135", r.Year1High, r.Year1Low)
	}
	if !approx(r.Return1Y, 499.0/134.0-1) {
		t.Errorf("1y_return = %v", r.Return1Y)
	}
	if !approx(r.Return1D, 499.0/498.0-1) {
		t.Errorf("1d_return = %v", r.Return1D)
	}
}

func TestBuildSummaryShortHistoryNullsOneYear(t *testing.T) {
	// 300 rows: 1m present, 1y absent.
	table := syntheticTable([]string{"BTC-USD"}, 300, 50)
	rows := BuildSummary(table, map[string]domain.FundamentalsRecord{
		"BTC-USD": {Sector: "crypto", Symbol: "BTC-USD"},
	})

	r := rows[0]
	if r.Price1M == nil || r.Return1M == nil {
		t.Error("1m lag should be available with 300 rows")
	}
	if r.Price1Y != nil {
		t.Errorf("price_1_y = %v, want nil with 300 rows", *r.Price1Y)
	}
	if r.Return1Y != nil {
		t.Errorf("1y_return = %v, want nil", *r.Return1Y)
	}
}

func TestBuildSummaryZeroBasePropagatesNil(t *testing.T) {
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 2)}
	table := domain.NewPriceTable(dates, []string{"X"})
	table.Set("X", dates[0], 0)
	table.Set("X", dates[1], 5)

	r := BuildSummary(table, nil)[0]
	if r.Return1D != nil {
		t.Errorf("division by zero base must yield nil, got %v", *r.Return1D)
	}
}

func TestBuildSummaryMissingFundamentalsKeepsRow(t *testing.T) {
	table := syntheticTable([]string{"GME"}, 10, 20)
	rows := BuildSummary(table, map[string]domain.FundamentalsRecord{})

	if len(rows) != 1 {
		t.Fatal("ticker without fundamentals must not be dropped")
	}
	r := rows[0]
	if r.Symbol != "GME" {
		t.Errorf("symbol = %q", r.Symbol)
	}
	if r.PERatio != nil || r.MarketCapBn != nil {
		t.Error("missing fundamentals must stay nil")
	}
	if r.LastPrice == nil {
		t.Error("price columns must still be populated")
	}
}

func TestBuildSummaryAllNaNColumn(t *testing.T) {
	table := syntheticTable([]string{"OK"}, 10, 20)
	// GONE is a requested symbol the provider returned nothing for.
	withGone := domain.NewPriceTable(table.Dates, []string{"OK", "GONE"})
	for i, d := range table.Dates {
		withGone.Set("OK", d, 20+float64(i))
	}

	rows := BuildSummary(withGone, nil)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Ticker != "GONE" {
			continue
		}
		if r.LastPrice != nil || r.ATHPrice != nil || r.Return1D != nil {
			t.Error("all-NaN column must produce an all-nil row, not an error")
		}
	}
}
