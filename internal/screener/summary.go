package screener

import (
	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
)

// Row offsets from the end of the price table approximating "N trading
// periods ago". These are row counts, not calendar lookups: on the
// forward-filled equity calendar a year is ~252 rows padded to the union
// index, on the crypto calendar it is 365. A table shorter than an offset
// nulls the column out instead of failing, so newly listed tickers keep
// their partial rows.
const (
	offsetLast     = 1
	offset1Day     = 2
	offset1Week    = 8
	offset1Month   = 31
	offset6Months  = 183
	offset1Year    = 366
	trailingYearRows = 365
)

// BuildSummary joins the lagged price snapshots, range statistics, and
// fundamentals into one row per ticker and derives the relative returns.
// Every ticker in the table gets a row; a ticker missing from fundamentals
// keeps null fundamental fields rather than being dropped.
func BuildSummary(table *domain.PriceTable, fundamentals map[string]domain.FundamentalsRecord) []domain.SummaryRow {
	rows := make([]domain.SummaryRow, 0, len(table.Symbols))
	for _, ticker := range table.Symbols {
		record, ok := fundamentals[ticker]
		if !ok {
			record = domain.FundamentalsRecord{Symbol: ticker}
		}

		row := domain.SummaryRow{
			Ticker:             ticker,
			LastPrice:          table.FromEnd(ticker, offsetLast),
			Price1D:            table.FromEnd(ticker, offset1Day),
			Price1W:            table.FromEnd(ticker, offset1Week),
			Price1M:            table.FromEnd(ticker, offset1Month),
			Price6M:            table.FromEnd(ticker, offset6Months),
			Price1Y:            table.FromEnd(ticker, offset1Year),
			ATHPrice:           table.Max(ticker),
			Year1High:          table.TrailingMax(ticker, trailingYearRows),
			Year1Low:           table.TrailingMin(ticker, trailingYearRows),
			FundamentalsRecord: record,
		}

		row.Return1D = relativeReturn(row.LastPrice, row.Price1D)
		row.Return1W = relativeReturn(row.LastPrice, row.Price1W)
		row.Return1M = relativeReturn(row.LastPrice, row.Price1M)
		row.Return1Y = relativeReturn(row.LastPrice, row.Price1Y)
		row.DistATH = relativeReturn(row.LastPrice, row.ATHPrice)

		rows = append(rows, row)
	}
	return rows
}

// relativeReturn computes latest/base - 1, propagating nil when either
// operand is missing or the base is zero.
func relativeReturn(latest, base *float64) *float64 {
	if latest == nil || base == nil || *base == 0 {
		return nil
	}
	r := *latest / *base - 1
	return &r
}
