package screener

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

// QuoteFetcher is the per-ticker fundamentals capability of the upstream
// provider.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*provider.Quote, error)
}

// FundamentalsFetcher fans one quote request out per ticker over a bounded
// worker pool. The pool only masks network latency; a concurrency of 1 is the
// same fetch run sequentially.
type FundamentalsFetcher struct {
	tracer      trace.Tracer
	quotes      QuoteFetcher
	concurrency int
	timeout     time.Duration
}

func NewFundamentalsFetcher(tracer trace.Tracer, quotes QuoteFetcher, concurrency int, timeout time.Duration) *FundamentalsFetcher {
	if concurrency <= 0 {
		concurrency = 10
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FundamentalsFetcher{
		tracer:      tracer,
		quotes:      quotes,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Fetch returns exactly one record per requested ticker. A failed or timed
// out quote resolves to the degenerate record for the ticker's class; no
// ticker is ever dropped and no failure aborts the batch.
func (f *FundamentalsFetcher) Fetch(ctx context.Context, tickers []string, classOf func(string) domain.AssetClass) map[string]domain.FundamentalsRecord {
	ctx, span := f.tracer.Start(ctx, "screener.fetch-fundamentals")
	defer span.End()

	records := make(map[string]domain.FundamentalsRecord, len(tickers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	work := make(chan string)
	workers := f.concurrency
	if workers > len(tickers) {
		workers = len(tickers)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range work {
				record := f.fetchOne(ctx, ticker, classOf(ticker))
				mu.Lock()
				records[ticker] = record
				mu.Unlock()
			}
		}()
	}

	for _, ticker := range tickers {
		work <- ticker
	}
	close(work)
	wg.Wait()

	return records
}

func (f *FundamentalsFetcher) fetchOne(ctx context.Context, ticker string, class domain.AssetClass) domain.FundamentalsRecord {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	quote, err := f.quotes.FetchQuote(ctx, ticker)
	if err != nil {
		log.Printf("fundamentals for %s unavailable: %v", ticker, err)
		return domain.DegenerateFundamentals(ticker, class)
	}
	return buildRecord(ticker, quote, class)
}

// buildRecord resolves every field of the record in one place: absent fields
// stay nil, the sector falls back to the class tag, and the unit conversions
// are skipped entirely when the raw value is absent or zero.
func buildRecord(ticker string, q *provider.Quote, class domain.AssetClass) domain.FundamentalsRecord {
	r := domain.FundamentalsRecord{
		Sector:                   q.Sector,
		PERatio:                  clone(q.TrailingPE),
		RevenueBn:                scaled(q.TotalRevenue, 1e9),
		DividendYield:            clone(q.DividendYield),
		FiveYearAvgDividendYield: clone(q.FiveYearAvgDividendYield),
		PayoutRatio:              clone(q.PayoutRatio),
		Beta:                     clone(q.Beta),
		TrailingPE:               clone(q.TrailingPE),
		ForwardPE:                clone(q.ForwardPE),
		VolumeMil:                scaled(q.Volume, 1e6),
		AverageVolumeMil:         scaled(q.AverageVolume, 1e6),
		MarketCapBn:              scaled(q.MarketCap, 1e9),
		ShortPercentOfFloat:      clone(q.ShortPercentOfFloat),
		BookValue:                clone(q.BookValue),
		TrailingEps:              clone(q.TrailingEps),
		ForwardEps:               clone(q.ForwardEps),
		Symbol:                   q.Symbol,
		ShortName:                q.ShortName,
		DebtToEquity:             clone(q.DebtToEquity),
	}
	if r.Sector == "" {
		r.Sector = class.DefaultSector()
	}
	if r.Symbol == "" {
		r.Symbol = ticker
	}
	return r
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// scaled divides a raw provider value by divisor. A nil or zero raw value
// yields nil rather than zero, matching the snapshot file's null cells.
func scaled(v *float64, divisor float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	c := *v / divisor
	return &c
}
