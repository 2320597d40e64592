package handler

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type priceSeries struct {
	Dates  []string   `json:"dates"`
	Closes []*float64 `json:"closes"`
}

// GetPrices godoc
// @Summary      Get daily close history for tickers
// @Description  Returns per-ticker daily close series for charting, optionally restricted to dates on or after from
// @Tags         prices
// @Produce      json
// @Param        symbols  query  string  true   "Comma-separated ticker symbols"
// @Param        from     query  string  false  "Start date (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/prices [get]
func (h *Handler) GetPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-prices")
	defer span.End()

	raw := c.Query("symbols")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	span.SetAttributes(attribute.Int("symbols.count", len(symbols)))

	from := time.Time{}
	if v := c.Query("from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date: " + v})
			return
		}
		from = d
	}

	data, err := h.data(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	series := make(map[string]priceSeries, len(symbols))
	for _, symbol := range symbols {
		table := data.Equities
		if data.Universe.ClassOf(symbol) == domain.ClassCrypto {
			table = data.Crypto
		}
		if table.Column(symbol) == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown symbol: " + symbol})
			return
		}
		slice := table.Slice(from, []string{symbol})
		s := priceSeries{
			Dates:  make([]string, slice.Rows()),
			Closes: make([]*float64, slice.Rows()),
		}
		for i, d := range slice.Dates {
			s.Dates[i] = d.Format("2006-01-02")
			if v := slice.At(symbol, i); !math.IsNaN(v) {
				v := v
				s.Closes[i] = &v
			}
		}
		series[symbol] = s
	}

	c.JSON(http.StatusOK, gin.H{
		"fetched_at": data.FetchedAt,
		"series":     series,
	})
}
