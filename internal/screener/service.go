package screener

import (
	"context"
	"log"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/snapshot"

	"go.opentelemetry.io/otel/trace"
)

// UniverseResolver yields the ticker universe for one run.
type UniverseResolver interface {
	Resolve(ctx context.Context) domain.UniverseSpec
}

// Service runs the whole fetch-and-aggregate pipeline: resolve the universe,
// fetch fundamentals and the per-class price histories, build the summary,
// and write the CSV snapshot. One Run is one synchronous pipeline invocation;
// the only internal parallelism is the fundamentals fan-out.
type Service struct {
	tracer       trace.Tracer
	resolver     UniverseResolver
	fundamentals *FundamentalsFetcher
	history      *PriceHistory
	snapshotPath string
}

func NewService(
	tracer trace.Tracer,
	resolver UniverseResolver,
	fundamentals *FundamentalsFetcher,
	history *PriceHistory,
	snapshotPath string,
) *Service {
	return &Service{
		tracer:       tracer,
		resolver:     resolver,
		fundamentals: fundamentals,
		history:      history,
		snapshotPath: snapshotPath,
	}
}

// Run executes the pipeline once and returns the full market data set. The
// fetch timestamp is captured here, inside the computation, so a cached
// result keeps reporting when its data was actually fetched.
func (s *Service) Run(ctx context.Context) (*domain.MarketData, error) {
	ctx, span := s.tracer.Start(ctx, "screener.run")
	defer span.End()

	fetchedAt := time.Now().UTC()
	spec := s.resolver.Resolve(ctx)

	equities, err := s.history.FetchEquityGroup(ctx, spec.EquityGroup())
	if err != nil {
		return nil, err
	}
	crypto, err := s.history.FetchCrypto(ctx, spec.Cryptos)
	if err != nil {
		return nil, err
	}

	fundamentals := s.fundamentals.Fetch(ctx, spec.All(), spec.ClassOf)

	summary := BuildSummary(equities, fundamentals)
	summary = append(summary, BuildSummary(crypto, fundamentals)...)

	if s.snapshotPath != "" {
		if err := snapshot.WriteCSV(s.snapshotPath, summary); err != nil {
			// The snapshot is a side effect; a write failure does not
			// invalidate the in-memory result.
			log.Printf("snapshot write failed: %v", err)
		} else {
			log.Printf("market data summary saved to %s (%d rows)", s.snapshotPath, len(summary))
		}
	}

	return &domain.MarketData{
		Universe:  spec,
		Equities:  equities,
		Crypto:    crypto,
		Summary:   summary,
		FetchedAt: fetchedAt,
	}, nil
}
