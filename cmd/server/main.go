package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/cache"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/config"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/handler"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/provider"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/screener"
	"github.com/thomasvm59/YFH-Dashboard-St/internal/universe"
	"github.com/thomasvm59/YFH-Dashboard-St/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/thomasvm59/YFH-Dashboard-St/docs"
)

var (
	loadEnvFunc     = godotenv.Load
	loadConfigFunc  = config.Load
	initTracerFunc  = tracing.InitTracer
	newProviderFunc = func(tracer trace.Tracer, baseURL string) *provider.YahooProvider {
		return provider.NewYahooProvider(tracer, baseURL)
	}
	newHandlerFunc = handler.New
	newRouterFunc  = gin.Default
	warmCacheFunc  = func(ctx context.Context, c *cache.HourlyCache, pipeline handler.Pipeline) {
		go func() {
			if _, err := c.GetOrCompute(ctx, cache.HourBucket(time.Now()), pipeline.Run); err != nil {
				log.Printf("startup cache warm failed: %v", err)
			}
		}()
	}
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Market Screener API
// @version         1.0
// @description     Equity, ETF and crypto screening dashboard backend.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	yahoo := newProviderFunc(tracer, cfg.YahooBaseURL)

	resolver := universe.NewResolver(tracer, yahoo,
		domain.DefaultEquities, domain.DefaultETFs, domain.DefaultCryptos,
		cfg.MostActiveCount)
	fundamentals := screener.NewFundamentalsFetcher(tracer, yahoo,
		cfg.FetchConcurrency, time.Duration(cfg.FetchTimeoutSecs)*time.Second)
	history := screener.NewPriceHistory(tracer, yahoo, cfg.HistoryStart)
	pipeline := screener.NewService(tracer, resolver, fundamentals, history, cfg.SnapshotPath)

	hourly := cache.NewHourlyCache()

	// Warm the current hour in the background so the first request after
	// startup does not pay the full pipeline latency.
	warmCacheFunc(ctx, hourly, pipeline)

	h := newHandlerFunc(tracer, hourly, pipeline)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("yfh-dashboard"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
