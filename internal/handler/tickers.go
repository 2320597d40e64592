package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTickers godoc
// @Summary      Get the resolved ticker universe
// @Description  Returns the tickers tracked in the current hour, grouped by asset class
// @Tags         tickers
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/tickers [get]
func (h *Handler) GetTickers(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-tickers")
	defer span.End()

	data, err := h.data(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equities": data.Universe.Equities,
		"etfs":     data.Universe.ETFs,
		"cryptos":  data.Universe.Cryptos,
	})
}
