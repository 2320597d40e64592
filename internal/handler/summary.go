package handler

import (
	"net/http"
	"strconv"

	"github.com/thomasvm59/YFH-Dashboard-St/internal/screener"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetSummary godoc
// @Summary      Get the market summary table
// @Description  Returns one summary row per ticker, optionally filtered by a numeric column predicate and/or sector
// @Tags         summary
// @Produce      json
// @Param        column  query  string  false  "Numeric column to filter on (e.g., last_price, marketCap(Bn))"
// @Param        op      query  string  false  "Filter operator: =, >= or <="
// @Param        value   query  number  false  "Filter threshold"
// @Param        sector  query  string  false  "Sector to restrict rows to"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-summary")
	defer span.End()

	data, err := h.data(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := data.Summary

	column := c.Query("column")
	op := c.Query("op")
	value := c.Query("value")
	if column != "" || op != "" || value != "" {
		if column == "" || op == "" || value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "column, op and value must be provided together"})
			return
		}
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value: " + value})
			return
		}
		span.SetAttributes(attribute.String("filter.column", column), attribute.String("filter.op", op))
		rows, err = screener.Filter(rows, column, screener.FilterOp(op), threshold)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if sector := c.Query("sector"); sector != "" {
		rows = screener.FilterSector(rows, sector)
	}

	c.JSON(http.StatusOK, gin.H{
		"fetched_at": data.FetchedAt,
		"count":      len(rows),
		"rows":       rows,
	})
}

// GetSectors godoc
// @Summary      List sectors present in the summary
// @Description  Returns the distinct sector values across all summary rows
// @Tags         summary
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/summary/sectors [get]
func (h *Handler) GetSectors(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-sectors")
	defer span.End()

	data, err := h.data(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sectors": screener.Sectors(data.Summary)})
}
