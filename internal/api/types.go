// Package api defines the request and response bodies shared by the
// gateway's HTTP handlers.
package api

// ErrorResponse is the generic error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success body for endpoints without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login. UserName and UserEmail are
// passed through from the backend when it supplies them.
type LoginResponse struct {
	Token     string `json:"token"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

// SessionStatusResponse describes the current session lifecycle state.
type SessionStatusResponse struct {
	State            string `json:"state"`
	RemainingSeconds int64  `json:"remainingSeconds"`
}

// AddHoldingRequest is the body of POST /portfolio.
type AddHoldingRequest struct {
	AssetType     string  `json:"assetType" binding:"required"`
	Symbol        string  `json:"symbol" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PurchasePrice float64 `json:"purchasePrice" binding:"required,gt=0"`
}

// HoldingResponse is one row of the holdings table, with the per-holding
// derived values precomputed for the UI.
type HoldingResponse struct {
	ID            string  `json:"id"`
	AssetType     string  `json:"assetType"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	CostBasis     float64 `json:"costBasis"`
	CurrentValue  float64 `json:"currentValue"`
	PnLAmount     float64 `json:"pnlAmount"`
	PnLPct        float64 `json:"pnlPct"`
}

// MetricsResponse carries the aggregate dashboard values.
type MetricsResponse struct {
	TotalBalance   float64          `json:"totalBalance"`
	TotalCostBasis float64          `json:"totalCostBasis"`
	ChangeAmount   float64          `json:"changeAmount"`
	ChangePct      float64          `json:"changePct"`
	Allocation     []AllocationItem `json:"allocation"`
}

// AllocationItem is one slice of the allocation breakdown.
type AllocationItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// QuoteResponse is one instrument's current price.
type QuoteResponse struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"currentPrice"`
}

// ClosingPriceResponse is one day of price history for the line chart.
type ClosingPriceResponse struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}
