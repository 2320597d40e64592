package screener

import (
	"context"
	"fmt"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// HistoryFetcher is the batched daily-close capability of the upstream
// provider.
type HistoryFetcher interface {
	FetchDailyCloses(ctx context.Context, symbols []string, start time.Time) (*domain.PriceTable, error)
}

// PriceHistory fetches the per-class price tables. Equities and ETFs share a
// table and get forward-filled to paper over provider gaps; crypto trades
// every day and keeps its raw gaps. Both tables drop rows dated today or
// later so a half-formed session never reaches the aggregator.
type PriceHistory struct {
	tracer trace.Tracer
	prices HistoryFetcher
	start  time.Time
	now    func() time.Time
}

func NewPriceHistory(tracer trace.Tracer, prices HistoryFetcher, start time.Time) *PriceHistory {
	return &PriceHistory{
		tracer: tracer,
		prices: prices,
		start:  start,
		now:    time.Now,
	}
}

// FetchEquityGroup fetches the combined equities+ETFs table.
func (h *PriceHistory) FetchEquityGroup(ctx context.Context, symbols []string) (*domain.PriceTable, error) {
	ctx, span := h.tracer.Start(ctx, "screener.fetch-equity-history")
	defer span.End()

	table, err := h.prices.FetchDailyCloses(ctx, symbols, h.start)
	if err != nil {
		return nil, fmt.Errorf("fetch equity history: %w", err)
	}
	table.ForwardFill()
	table.TrimOnOrAfter(h.now())
	return table, nil
}

// FetchCrypto fetches the crypto table on its own 7-day calendar.
func (h *PriceHistory) FetchCrypto(ctx context.Context, symbols []string) (*domain.PriceTable, error) {
	ctx, span := h.tracer.Start(ctx, "screener.fetch-crypto-history")
	defer span.End()

	table, err := h.prices.FetchDailyCloses(ctx, symbols, h.start)
	if err != nil {
		return nil, fmt.Errorf("fetch crypto history: %w", err)
	}
	table.TrimOnOrAfter(h.now())
	return table, nil
}
