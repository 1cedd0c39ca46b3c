// Package dto defines the wire shapes of the remote WealthWise REST API.
package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// Number decodes JSON values that arrive either as a number or a quoted
// string. The market endpoint is inconsistent about this.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*n = Number(f)
	return nil
}

// UserPayload is the optional user object on the login response.
type UserPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginPayload is the nested variant of the login response body.
type LoginPayload struct {
	Token string       `json:"token"`
	User  *UserPayload `json:"user"`
}

// LoginResponse mirrors the login endpoint body. Deployments differ on
// whether the payload sits at the top level or nested under data, so both
// shapes are accepted.
type LoginResponse struct {
	Token   string        `json:"token"`
	User    *UserPayload  `json:"user"`
	Data    *LoginPayload `json:"data"`
	Message string        `json:"message"`
}

// HoldingPayload is one holding as the backend serializes it. Mongo-backed
// deployments use _id, others use id.
type HoldingPayload struct {
	MongoID       string `json:"_id"`
	ID            string `json:"id"`
	AssetType     string `json:"assetType"`
	Symbol        string `json:"symbol"`
	Quantity      Number `json:"quantity"`
	PurchasePrice Number `json:"purchasePrice"`
}

// Identifier returns whichever id field the backend populated.
func (p HoldingPayload) Identifier() string {
	if p.MongoID != "" {
		return p.MongoID
	}
	return p.ID
}

// PortfolioResponse is the body of GET /api/portfolio.
type PortfolioResponse struct {
	Data []HoldingPayload `json:"data"`
}

// CreateHoldingRequest is the body of POST /api/portfolio.
type CreateHoldingRequest struct {
	AssetType     string  `json:"assetType"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// HistoryPoint is one day of price history on a market quote.
type HistoryPoint struct {
	Date  string `json:"date"`
	Close Number `json:"close"`
}

// QuotePayload is one instrument on the market-data response.
type QuotePayload struct {
	Symbol       string         `json:"symbol"`
	CurrentPrice Number         `json:"currentPrice"`
	History      []HistoryPoint `json:"history"`
}

// ErrorBody is the error shape the backend uses; some endpoints use message,
// others error.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Text returns whichever error field was populated.
func (e ErrorBody) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
