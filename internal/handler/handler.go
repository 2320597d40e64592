package handler

import (
	"context"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/cache"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Pipeline runs one fetch-and-aggregate cycle.
type Pipeline interface {
	Run(ctx context.Context) (*domain.MarketData, error)
}

type Handler struct {
	tracer   trace.Tracer
	cache    *cache.HourlyCache
	pipeline Pipeline
}

func New(tracer trace.Tracer, c *cache.HourlyCache, pipeline Pipeline) *Handler {
	return &Handler{
		tracer:   tracer,
		cache:    c,
		pipeline: pipeline,
	}
}

// RegisterRoutes mounts the API. The health endpoint stays outside the
// authenticated group so probes never need the key.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/summary", h.GetSummary)
	api.GET("/summary/sectors", h.GetSectors)
	api.GET("/prices", h.GetPrices)
	api.GET("/tickers", h.GetTickers)
}

// data returns the market data for the current hour bucket, running the
// pipeline on a miss.
func (h *Handler) data(ctx context.Context) (*domain.MarketData, error) {
	return h.cache.GetOrCompute(ctx, cache.HourBucket(time.Now()), h.pipeline.Run)
}
