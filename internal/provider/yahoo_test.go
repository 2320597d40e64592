package provider

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func testProvider(serverURL string) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: serverURL,
		tracer:  trace.NewNoopTracerProvider().Tracer("test"),
		limiter: NewRateLimiter(100, time.Millisecond),
	}
}

func chartJSON(startUnix int64, closes []string) string {
	timestamps := make([]string, len(closes))
	for i := range closes {
		timestamps[i] = fmt.Sprintf("%d", startUnix+int64(i)*86400)
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],
		"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`,
		strings.Join(timestamps, ","), strings.Join(closes, ","))
}

func TestFetchQuoteParsesModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v10/finance/quoteSummary/AAPL") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"quoteSummary":{"result":[{
			"assetProfile":{"sector":"Technology"},
			"price":{"symbol":"AAPL","shortName":"Apple Inc."},
			"summaryDetail":{
				"trailingPE":{"raw":28.5,"fmt":"28.50"},
				"dividendYield":{"raw":0.0055},
				"beta":{"raw":1.21},
				"volume":{"raw":50000000},
				"averageVolume":{"raw":60000000},
				"marketCap":{"raw":2800000000000},
				"payoutRatio":{}
			},
			"defaultKeyStatistics":{
				"shortPercentOfFloat":{"raw":0.0071},
				"trailingEps":{"raw":6.13}
			},
			"financialData":{
				"totalRevenue":{"raw":383000000000},
				"debtToEquity":{"raw":176.3}
			}
		}],"error":null}}`)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	q, err := p.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Symbol != "AAPL" || q.ShortName != "Apple Inc." || q.Sector != "Technology" {
		t.Errorf("identity fields wrong: %+v", q)
	}
	if q.TrailingPE == nil || *q.TrailingPE != 28.5 {
		t.Errorf("trailingPE = %v, want 28.5", q.TrailingPE)
	}
	if q.TotalRevenue == nil || *q.TotalRevenue != 383000000000 {
		t.Errorf("totalRevenue = %v, want 383e9", q.TotalRevenue)
	}
	// Empty {"payoutRatio":{}} objects must read as absent, not zero.
	if q.PayoutRatio != nil {
		t.Errorf("payoutRatio = %v, want nil", *q.PayoutRatio)
	}
	if q.ForwardPE != nil {
		t.Errorf("forwardPE = %v, want nil (not in response)", *q.ForwardPE)
	}
}

func TestFetchQuoteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	if _, err := p.FetchQuote(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error from yahoo error payload")
	}
}

func TestFetchDailyClosesOuterJoin(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/AAPL"):
			fmt.Fprint(w, chartJSON(start, []string{"100", "101", "102"}))
		case strings.Contains(r.URL.Path, "/MSFT"):
			// One day shorter and with a null bar in the middle.
			fmt.Fprint(w, chartJSON(start, []string{"200", "null"}))
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"no such symbol"}}}`)
		}
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	table, err := p.FetchDailyCloses(context.Background(), []string{"AAPL", "MSFT", "GONE"}, time.Unix(start, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Rows() != 3 {
		t.Fatalf("rows = %d, want 3 (union of date axes)", table.Rows())
	}
	if got := table.At("AAPL", 2); got != 102 {
		t.Errorf("AAPL last close = %v, want 102", got)
	}
	if got := table.At("MSFT", 0); got != 200 {
		t.Errorf("MSFT first close = %v, want 200", got)
	}
	// MSFT null bar and missing third day stay NaN.
	if !math.IsNaN(table.At("MSFT", 1)) || !math.IsNaN(table.At("MSFT", 2)) {
		t.Error("MSFT gaps should be NaN")
	}
	// A symbol the API errors on keeps an all-NaN column, not a missing one.
	for i := 0; i < 3; i++ {
		if !math.IsNaN(table.At("GONE", i)) {
			t.Fatalf("GONE row %d should be NaN", i)
		}
	}
}

func TestFetchMostActives(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("scrIds"); got != "most_actives" {
			t.Errorf("scrIds = %q, want most_actives", got)
		}
		fmt.Fprint(w, `{"finance":{"result":[{"quotes":[
			{"symbol":"TSLA"},{"symbol":"NVDA"},{"symbol":" "},{"symbol":"GME"}
		]}],"error":null}}`)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	symbols, err := p.FetchMostActives(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"TSLA", "NVDA", "GME"}
	if len(symbols) != len(want) {
		t.Fatalf("symbols = %v, want %v", symbols, want)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], want[i])
		}
	}
}

func TestDoRequestRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	if _, err := p.FetchMostActives(context.Background(), 10); err == nil {
		t.Fatal("expected error for 429 response")
	}
}
