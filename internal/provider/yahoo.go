package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// quoteSummary modules carrying the fundamental fields we extract.
const quoteSummaryModules = "assetProfile,price,summaryDetail,defaultKeyStatistics,financialData"

// YahooProvider fetches daily close history, per-ticker fundamentals, and the
// most-actives screener from the Yahoo Finance public API.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewYahooProvider creates a provider with built-in rate limiting.
// Rate limited to 4 requests per second; the history fetch for a full
// universe is a long sequence of chart calls and this keeps it under
// Yahoo's throttling threshold.
func NewYahooProvider(tracer trace.Tracer, baseURL string) *YahooProvider {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(4, 250*time.Millisecond),
	}
}

// Quote is the raw fundamentals payload for one ticker. Pointer fields are
// nil when Yahoo does not report the value; no unit conversion happens here.
type Quote struct {
	Symbol                   string
	ShortName                string
	Sector                   string
	TrailingPE               *float64
	ForwardPE                *float64
	TotalRevenue             *float64
	DividendYield            *float64
	FiveYearAvgDividendYield *float64
	PayoutRatio              *float64
	Beta                     *float64
	Volume                   *float64
	AverageVolume            *float64
	MarketCap                *float64
	ShortPercentOfFloat      *float64
	BookValue                *float64
	TrailingEps              *float64
	ForwardEps               *float64
	DebtToEquity             *float64
}

// yfValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper. Fields are
// sometimes an empty object, so Raw is a pointer.
type yfValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			Price *struct {
				Symbol    string `json:"symbol"`
				ShortName string `json:"shortName"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE               *yfValue `json:"trailingPE"`
				ForwardPE                *yfValue `json:"forwardPE"`
				DividendYield            *yfValue `json:"dividendYield"`
				FiveYearAvgDividendYield *yfValue `json:"fiveYearAvgDividendYield"`
				PayoutRatio              *yfValue `json:"payoutRatio"`
				Beta                     *yfValue `json:"beta"`
				Volume                   *yfValue `json:"volume"`
				AverageVolume            *yfValue `json:"averageVolume"`
				MarketCap                *yfValue `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				ShortPercentOfFloat *yfValue `json:"shortPercentOfFloat"`
				BookValue           *yfValue `json:"bookValue"`
				TrailingEps         *yfValue `json:"trailingEps"`
				ForwardEps          *yfValue `json:"forwardEps"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				TotalRevenue *yfValue `json:"totalRevenue"`
				DebtToEquity *yfValue `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchQuote fetches the fundamentals payload for a single ticker.
func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	_, span := p.tracer.Start(ctx, "yahoo.fetch-quote")
	defer span.End()

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		p.baseURL, url.PathEscape(symbol), quoteSummaryModules)

	body, err := p.doRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}

	var raw quoteSummaryResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse quote for %s: %w", symbol, err)
	}
	if raw.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote for %s: yahoo error %s: %s",
			symbol, raw.QuoteSummary.Error.Code, raw.QuoteSummary.Error.Description)
	}
	if len(raw.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote for %s: empty result", symbol)
	}

	r := raw.QuoteSummary.Result[0]
	q := &Quote{Symbol: symbol}
	if r.Price != nil {
		if r.Price.Symbol != "" {
			q.Symbol = r.Price.Symbol
		}
		q.ShortName = r.Price.ShortName
	}
	if r.AssetProfile != nil {
		q.Sector = r.AssetProfile.Sector
	}
	if d := r.SummaryDetail; d != nil {
		q.TrailingPE = rawValue(d.TrailingPE)
		q.ForwardPE = rawValue(d.ForwardPE)
		q.DividendYield = rawValue(d.DividendYield)
		q.FiveYearAvgDividendYield = rawValue(d.FiveYearAvgDividendYield)
		q.PayoutRatio = rawValue(d.PayoutRatio)
		q.Beta = rawValue(d.Beta)
		q.Volume = rawValue(d.Volume)
		q.AverageVolume = rawValue(d.AverageVolume)
		q.MarketCap = rawValue(d.MarketCap)
	}
	if k := r.DefaultKeyStatistics; k != nil {
		q.ShortPercentOfFloat = rawValue(k.ShortPercentOfFloat)
		q.BookValue = rawValue(k.BookValue)
		q.TrailingEps = rawValue(k.TrailingEps)
		q.ForwardEps = rawValue(k.ForwardEps)
	}
	if f := r.FinancialData; f != nil {
		q.TotalRevenue = rawValue(f.TotalRevenue)
		q.DebtToEquity = rawValue(f.DebtToEquity)
	}
	return q, nil
}

func rawValue(v *yfValue) *float64 {
	if v == nil || v.Raw == nil {
		return nil
	}
	f := *v.Raw
	return &f
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses fetches daily close history for every symbol from start to
// now and outer-joins the series on the date axis. A symbol the API errors on
// is logged and keeps an all-NaN column; one bad ticker never fails the batch.
func (p *YahooProvider) FetchDailyCloses(ctx context.Context, symbols []string, start time.Time) (*domain.PriceTable, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-daily-closes")
	defer span.End()

	series := make(map[string]map[time.Time]float64, len(symbols))
	dateSet := make(map[time.Time]struct{})

	for _, symbol := range symbols {
		points, err := p.fetchChart(ctx, symbol, start)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("price history for %s unavailable: %v", symbol, err)
			continue
		}
		series[symbol] = points
		for d := range points {
			dateSet[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	table := domain.NewPriceTable(dates, symbols)
	for symbol, points := range series {
		for d, close := range points {
			table.Set(symbol, d, close)
		}
	}
	return table, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol string, start time.Time) (map[time.Time]float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		p.baseURL, url.PathEscape(symbol), start.Unix(), time.Now().Unix())

	body, err := p.doRequest(ctx, u)
	if err != nil {
		return nil, err
	}

	var raw chartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse chart: %w", err)
	}
	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error %s: %s", raw.Chart.Error.Code, raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	result := raw.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart result has no quote block")
	}
	closes := result.Indicators.Quote[0].Close

	points := make(map[time.Time]float64, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bar (holiday, halted session)
		}
		points[domain.Day(time.Unix(ts, 0))] = *closes[i]
	}
	return points, nil
}

type screenerResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"finance"`
}

// FetchMostActives fetches up to count symbols from the predefined
// most_actives screener.
func (p *YahooProvider) FetchMostActives(ctx context.Context, count int) ([]string, error) {
	_, span := p.tracer.Start(ctx, "yahoo.fetch-most-actives")
	defer span.End()

	u := fmt.Sprintf("%s/v1/finance/screener/predefined/saved?scrIds=most_actives&count=%d",
		p.baseURL, count)

	body, err := p.doRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch most actives: %w", err)
	}

	var raw screenerResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse most actives: %w", err)
	}
	if raw.Finance.Error != nil {
		return nil, fmt.Errorf("most actives: yahoo error %s: %s",
			raw.Finance.Error.Code, raw.Finance.Error.Description)
	}
	if len(raw.Finance.Result) == 0 {
		return nil, fmt.Errorf("most actives: empty result")
	}

	symbols := make([]string, 0, len(raw.Finance.Result[0].Quotes))
	for _, q := range raw.Finance.Result[0].Quotes {
		if s := strings.TrimSpace(q.Symbol); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols, nil
}

func (p *YahooProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("yahoo API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
