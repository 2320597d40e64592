package domain

// SummaryRow is one ticker's line in the screening table: the lagged price
// snapshots, the range statistics, the fundamentals, and the derived returns.
// Price and return fields are nil when the ticker's history is shorter than
// the lagged offset or an operand was missing.
type SummaryRow struct {
	Ticker string `json:"ticker"`

	LastPrice *float64 `json:"last_price"`
	Price1D   *float64 `json:"price_1_d"`
	Price1W   *float64 `json:"price_1_w"`
	Price1M   *float64 `json:"price_1_m"`
	Price6M   *float64 `json:"price_6_m"`
	Price1Y   *float64 `json:"price_1_y"`
	ATHPrice  *float64 `json:"ATH Price"`
	Year1High *float64 `json:"1Y_H"`
	Year1Low  *float64 `json:"1Y_L"`

	FundamentalsRecord

	Return1D *float64 `json:"1d_return"`
	Return1W *float64 `json:"1w_return"`
	Return1M *float64 `json:"1m_return"`
	Return1Y *float64 `json:"1y_return"`
	DistATH  *float64 `json:"dist_ath"`
}

// SummaryColumns is the tabular schema in CSV column order. The names match
// the snapshot file consumed by the dashboard, so they are not Go-styled.
var SummaryColumns = []string{
	"last_price", "price_1_d", "price_1_w", "price_1_m", "price_6_m", "price_1_y",
	"ATH Price", "1Y_H", "1Y_L",
	"Sector", "PE Ratio", "Revenue(Bn)", "dividendYield", "fiveYearAvgDividendYield",
	"payoutRatio", "beta", "trailingPE", "forwardPE", "volume(mil)",
	"averageVolume(mil)", "marketCap(Bn)", "shortPercentOfFloat", "bookValue",
	"trailingEps", "forwardEps", "symbol", "shortName", "debtToEquity",
	"1d_return", "1w_return", "1m_return", "1y_return", "dist_ath",
}

// NumericColumn returns the value of a numeric column by its tabular name.
// The second result is false for unknown or string columns, or when the cell
// is nil.
func (r SummaryRow) NumericColumn(name string) (float64, bool) {
	var p *float64
	switch name {
	case "last_price":
		p = r.LastPrice
	case "price_1_d":
		p = r.Price1D
	case "price_1_w":
		p = r.Price1W
	case "price_1_m":
		p = r.Price1M
	case "price_6_m":
		p = r.Price6M
	case "price_1_y":
		p = r.Price1Y
	case "ATH Price":
		p = r.ATHPrice
	case "1Y_H":
		p = r.Year1High
	case "1Y_L":
		p = r.Year1Low
	case "PE Ratio":
		p = r.PERatio
	case "Revenue(Bn)":
		p = r.RevenueBn
	case "dividendYield":
		p = r.DividendYield
	case "fiveYearAvgDividendYield":
		p = r.FiveYearAvgDividendYield
	case "payoutRatio":
		p = r.PayoutRatio
	case "beta":
		p = r.Beta
	case "trailingPE":
		p = r.TrailingPE
	case "forwardPE":
		p = r.ForwardPE
	case "volume(mil)":
		p = r.VolumeMil
	case "averageVolume(mil)":
		p = r.AverageVolumeMil
	case "marketCap(Bn)":
		p = r.MarketCapBn
	case "shortPercentOfFloat":
		p = r.ShortPercentOfFloat
	case "bookValue":
		p = r.BookValue
	case "trailingEps":
		p = r.TrailingEps
	case "forwardEps":
		p = r.ForwardEps
	case "debtToEquity":
		p = r.DebtToEquity
	case "1d_return":
		p = r.Return1D
	case "1w_return":
		p = r.Return1W
	case "1m_return":
		p = r.Return1M
	case "1y_return":
		p = r.Return1Y
	case "dist_ath":
		p = r.DistATH
	default:
		return 0, false
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// StringColumn returns the value of a string column by its tabular name.
func (r SummaryRow) StringColumn(name string) (string, bool) {
	switch name {
	case "Sector":
		return r.Sector, true
	case "symbol":
		return r.Symbol, true
	case "shortName":
		return r.ShortName, true
	}
	return "", false
}
