package domain

// FundamentalsRecord holds the fixed set of per-ticker fundamental fields.
// Numeric fields are pointers: nil means the provider did not report the
// value. Revenue and market cap are in billions, volumes in millions; the
// conversion happens at fetch time, never here.
type FundamentalsRecord struct {
	Sector                   string   `json:"Sector"`
	PERatio                  *float64 `json:"PE Ratio"`
	RevenueBn                *float64 `json:"Revenue(Bn)"`
	DividendYield            *float64 `json:"dividendYield"`
	FiveYearAvgDividendYield *float64 `json:"fiveYearAvgDividendYield"`
	PayoutRatio              *float64 `json:"payoutRatio"`
	Beta                     *float64 `json:"beta"`
	TrailingPE               *float64 `json:"trailingPE"`
	ForwardPE                *float64 `json:"forwardPE"`
	VolumeMil                *float64 `json:"volume(mil)"`
	AverageVolumeMil         *float64 `json:"averageVolume(mil)"`
	MarketCapBn              *float64 `json:"marketCap(Bn)"`
	ShortPercentOfFloat      *float64 `json:"shortPercentOfFloat"`
	BookValue                *float64 `json:"bookValue"`
	TrailingEps              *float64 `json:"trailingEps"`
	ForwardEps               *float64 `json:"forwardEps"`
	Symbol                   string   `json:"symbol"`
	ShortName                string   `json:"shortName"`
	DebtToEquity             *float64 `json:"debtToEquity"`
}

// DegenerateFundamentals is the record a failed fetch resolves to: the class
// default sector and nothing else.
func DegenerateFundamentals(ticker string, class AssetClass) FundamentalsRecord {
	return FundamentalsRecord{
		Sector: class.DefaultSector(),
		Symbol: ticker,
	}
}
