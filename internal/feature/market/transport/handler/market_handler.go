// Package handler provides the HTTP handlers for the market feature.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthwise_gateway/internal/api"
	"wealthwise_gateway/internal/feature/market/domain/entity"
)

// QuoteUsecase serves the price table and per-symbol history.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type QuoteUsecase interface {
	Quotes() []entity.Quote
	History(symbol string) ([]entity.ClosingPrice, bool)
}

// MarketHandler processes the market data HTTP requests.
type MarketHandler struct {
	uc QuoteUsecase
}

// NewMarketHandler creates a new MarketHandler instance.
func NewMarketHandler(uc QuoteUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// ListQuotes handles GET /market/quotes.
func (h *MarketHandler) ListQuotes(c *gin.Context) {
	quotes := h.uc.Quotes()
	out := make([]api.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, api.QuoteResponse{Symbol: q.Symbol, CurrentPrice: q.CurrentPrice})
	}
	c.JSON(http.StatusOK, out)
}

// History handles GET /market/history/:symbol for the price line chart.
func (h *MarketHandler) History(c *gin.Context) {
	symbol := c.Param("symbol")

	history, ok := h.uc.History(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no history for symbol"})
		return
	}

	out := make([]api.ClosingPriceResponse, 0, len(history))
	for _, p := range history {
		out = append(out, api.ClosingPriceResponse{Date: p.Date, Close: p.Close})
	}
	c.JSON(http.StatusOK, out)
}
