// Package handler provides the HTTP handlers for the portfolio feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthwise_gateway/internal/api"
	"wealthwise_gateway/internal/feature/portfolio/domain/entity"
	"wealthwise_gateway/internal/feature/portfolio/usecase"
)

// PortfolioUsecase drives the holdings store and the remote backend.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PortfolioUsecase interface {
	Holdings() []entity.Holding
	Metrics() entity.Metrics
	Refresh(ctx context.Context) error
	Add(ctx context.Context, in usecase.NewHolding) (entity.Holding, error)
	Remove(ctx context.Context, id string) error
}

// PriceProvider supplies the current price table for per-row derived values.
type PriceProvider interface {
	Prices() map[string]float64
}

// MarketRefresher re-fetches the price table alongside the holdings.
type MarketRefresher interface {
	Refresh(ctx context.Context) error
}

// PortfolioHandler processes the holdings and metrics HTTP requests.
type PortfolioHandler struct {
	uc     PortfolioUsecase
	prices PriceProvider
	market MarketRefresher
}

// NewPortfolioHandler creates a new PortfolioHandler instance.
func NewPortfolioHandler(uc PortfolioUsecase, prices PriceProvider, market MarketRefresher) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, prices: prices, market: market}
}

func toHoldingResponse(h entity.Holding, prices map[string]float64) api.HoldingResponse {
	current := usecase.EffectivePrice(h, prices)
	costBasis := h.CostBasis()
	value := h.Quantity * current

	var pnlPct float64
	if costBasis > 0 {
		pnlPct = (value - costBasis) / costBasis
	}

	return api.HoldingResponse{
		ID:            h.ID,
		AssetType:     string(h.AssetType),
		Symbol:        h.Symbol,
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
		CurrentPrice:  current,
		CostBasis:     costBasis,
		CurrentValue:  value,
		PnLAmount:     value - costBasis,
		PnLPct:        pnlPct,
	}
}

// List handles GET /portfolio: the ordered holdings with per-row P&L.
func (h *PortfolioHandler) List(c *gin.Context) {
	prices := h.prices.Prices()
	holdings := h.uc.Holdings()

	out := make([]api.HoldingResponse, 0, len(holdings))
	for _, holding := range holdings {
		out = append(out, toHoldingResponse(holding, prices))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// Create handles POST /portfolio. Form-level validation happens before any
// network call; backend write failures surface as 502 and leave state
// unchanged.
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req api.AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	created, err := h.uc.Add(c.Request.Context(), usecase.NewHolding{
		AssetType:     entity.AssetType(req.AssetType),
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptySymbol),
			errors.Is(err, usecase.ErrUnknownAssetType),
			errors.Is(err, usecase.ErrNonPositiveQuantity),
			errors.Is(err, usecase.ErrNonPositivePrice):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Warn("add holding failed", "symbol", req.Symbol, "error", err)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "could not add holding"})
		}
		return
	}

	c.JSON(http.StatusCreated, toHoldingResponse(created, h.prices.Prices()))
}

// Delete handles DELETE /portfolio/:id. A duplicate invocation while the
// first removal is still in flight returns 409.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.uc.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrRemovalPending) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "removal already in progress"})
			return
		}
		slog.Warn("remove holding failed", "id", id, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "could not remove holding"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Metrics handles GET /metrics: the aggregate dashboard values.
func (h *PortfolioHandler) Metrics(c *gin.Context) {
	m := h.uc.Metrics()

	allocation := make([]api.AllocationItem, 0, len(m.Allocation))
	for _, a := range m.Allocation {
		allocation = append(allocation, api.AllocationItem{Name: a.Name, Value: a.Value})
	}

	c.JSON(http.StatusOK, api.MetricsResponse{
		TotalBalance:   m.TotalBalance,
		TotalCostBasis: m.TotalCostBasis,
		ChangeAmount:   m.ChangeAmount,
		ChangePct:      m.ChangePct,
		Allocation:     allocation,
	})
}

// Refresh handles POST /refresh: re-fetch holdings and market data, the
// gateway's analog of the dashboard mount. Read failures degrade inside the
// usecases, so this only fails on programmer error.
func (h *PortfolioHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.market.Refresh(ctx); err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market refresh failed"})
		return
	}
	if err := h.uc.Refresh(ctx); err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "portfolio refresh failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
