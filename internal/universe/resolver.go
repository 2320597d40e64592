package universe

import (
	"context"
	"log"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// ActivesScreener is the upstream most-actives capability.
type ActivesScreener interface {
	FetchMostActives(ctx context.Context, count int) ([]string, error)
}

// Resolver combines the static watch lists with the dynamically discovered
// most-active symbols. The static lists are injected so tests can run against
// a small universe.
type Resolver struct {
	tracer      trace.Tracer
	screener    ActivesScreener
	equities    []string
	etfs        []string
	cryptos     []string
	activeCount int
}

func NewResolver(tracer trace.Tracer, screener ActivesScreener, equities, etfs, cryptos []string, activeCount int) *Resolver {
	if activeCount <= 0 {
		activeCount = 50
	}
	return &Resolver{
		tracer:      tracer,
		screener:    screener,
		equities:    equities,
		etfs:        etfs,
		cryptos:     cryptos,
		activeCount: activeCount,
	}
}

// Resolve returns the universe for one pipeline run: static equities followed
// by discovered actives not already present in any static list, plus the
// static ETF and crypto lists. Screener failure degrades to the static-only
// universe; it never aborts the pipeline.
func (r *Resolver) Resolve(ctx context.Context) domain.UniverseSpec {
	ctx, span := r.tracer.Start(ctx, "universe.resolve")
	defer span.End()

	spec := domain.UniverseSpec{
		Equities: append([]string(nil), r.equities...),
		ETFs:     append([]string(nil), r.etfs...),
		Cryptos:  append([]string(nil), r.cryptos...),
	}

	if r.screener == nil {
		return spec
	}

	actives, err := r.screener.FetchMostActives(ctx, r.activeCount)
	if err != nil {
		log.Printf("most-actives screener unavailable, using static universe: %v", err)
		return spec
	}

	known := make(map[string]struct{}, len(r.equities)+len(r.etfs)+len(r.cryptos))
	for _, lists := range [][]string{r.equities, r.etfs, r.cryptos} {
		for _, t := range lists {
			known[t] = struct{}{}
		}
	}

	discovered := 0
	for _, symbol := range actives {
		if _, dup := known[symbol]; dup {
			continue
		}
		known[symbol] = struct{}{}
		spec.Equities = append(spec.Equities, symbol)
		discovered++
	}
	log.Printf("universe resolved: %d equities (%d discovered), %d etfs, %d cryptos",
		len(spec.Equities), discovered, len(spec.ETFs), len(spec.Cryptos))
	return spec
}
