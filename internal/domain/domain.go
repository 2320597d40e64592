package domain

import "time"

// AssetClass determines default sector tagging and which price calendar a
// ticker trades on (crypto trades every day, equities and ETFs do not).
type AssetClass string

const (
	ClassEquity AssetClass = "equity"
	ClassETF    AssetClass = "etf"
	ClassCrypto AssetClass = "crypto"
)

// UniverseSpec is the resolved ticker universe for one pipeline run.
// Equities includes the dynamically discovered most-active symbols; Cryptos is
// kept as a separate list because crypto price tables are built on their own
// calendar and must not be outer-joined with the equity tables.
type UniverseSpec struct {
	Equities []string `json:"equities"`
	ETFs     []string `json:"etfs"`
	Cryptos  []string `json:"cryptos"`
}

// EquityGroup returns the ordered equity-calendar fetch group: static
// equities, ETFs, then discovered actives (already appended to Equities).
func (u UniverseSpec) EquityGroup() []string {
	group := make([]string, 0, len(u.Equities)+len(u.ETFs))
	group = append(group, u.Equities...)
	group = append(group, u.ETFs...)
	return group
}

// All returns every ticker in the universe, equity group first.
func (u UniverseSpec) All() []string {
	all := u.EquityGroup()
	return append(all, u.Cryptos...)
}

// ClassOf reports the asset class of a ticker. Discovered actives live in
// Equities, so anything not an ETF or crypto is an equity.
func (u UniverseSpec) ClassOf(ticker string) AssetClass {
	for _, t := range u.Cryptos {
		if t == ticker {
			return ClassCrypto
		}
	}
	for _, t := range u.ETFs {
		if t == ticker {
			return ClassETF
		}
	}
	return ClassEquity
}

// DefaultSector is the sector tag used when the provider has none.
func (c AssetClass) DefaultSector() string {
	switch c {
	case ClassETF:
		return "etf"
	case ClassCrypto:
		return "crypto"
	default:
		return "N/A"
	}
}

// MarketData is the full pipeline output: the per-class price tables, the
// joined summary, and the wall-clock time the fetch ran. It is the value
// memoized by the hourly cache and consumed by the HTTP layer.
type MarketData struct {
	Universe  UniverseSpec
	Equities  *PriceTable
	Crypto    *PriceTable
	Summary   []SummaryRow
	FetchedAt time.Time
}

// DefaultEquities is the static S&P watch list.
var DefaultEquities = []string{
	"AAPL", "MSFT", "GOOG", "AMZN", "META", "BRK-B", "JNJ", "V", "NVDA", "WMT",
	"TSLA", "JPM", "PG", "UNH", "HD", "DIS", "PYPL", "MA", "ADBE", "CMCSA",
	"NFLX", "VZ", "KO", "PFE", "PEP", "T", "MRK", "CSCO", "INTC", "XOM",
	"BAC", "ABT", "CVX", "ORCL", "ACN", "CRM", "ABBV", "NKE", "LLY", "COST",
	"TMO", "DHR", "MCD", "MDT", "NEE", "TXN", "PM", "WFC", "BMY", "LIN",
	"RTX", "UNP", "HON", "LOW", "QCOM", "IBM", "INTU", "SBUX", "CAT", "AMGN",
	"GS", "BLK", "DE", "CHTR", "ISRG", "ADP", "AMD", "BKNG", "PLD", "AXP",
	"NOW", "SPGI", "CI", "ZTS", "GE", "AMAT", "SYK", "MMM", "TGT", "CB",
	"LMT", "ADI", "EL", "MO", "AMT", "BA", "FIS", "GILD", "SCHW", "MS", "C",
}

// DefaultETFs is the static ETF watch list.
var DefaultETFs = []string{"SPY", "QQQ", "DIA", "IWM"}

// DefaultCryptos is the static cryptocurrency watch list.
var DefaultCryptos = []string{
	"BTC-USD", "ETH-USD", "XRP-USD", "SOL-USD", "BNB-USD",
	"DOGE-USD", "ADA-USD", "TRX-USD", "LINK-USD", "AVAX-USD",
}
