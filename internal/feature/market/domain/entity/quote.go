// Package entity defines the domain entities for the market feature.
package entity

// Quote is one instrument's snapshot from the market-data endpoint.
type Quote struct {
	Symbol       string
	CurrentPrice float64
	History      []ClosingPrice
}

// ClosingPrice is one day of price history, newest first as delivered by the
// backend.
type ClosingPrice struct {
	Date  string
	Close float64
}
