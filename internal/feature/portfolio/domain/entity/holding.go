// Package entity defines the domain entities for the portfolio feature.
package entity

// AssetType classifies a holding into one of the supported instrument kinds.
type AssetType string

const (
	AssetStock      AssetType = "STOCK"
	AssetCrypto     AssetType = "CRYPTO"
	AssetMutualFund AssetType = "MUTUAL_FUND"
)

// Valid reports whether t is one of the supported asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetStock, AssetCrypto, AssetMutualFund:
		return true
	}
	return false
}

// Holding represents one owned position in a tradable instrument.
// The ID is assigned by the backend at creation. Holdings are never mutated
// in place; removal and re-addition are the only lifecycle events.
type Holding struct {
	ID            string
	AssetType     AssetType
	Symbol        string
	Quantity      float64
	PurchasePrice float64
}

// CostBasis returns the invested amount for the position.
func (h Holding) CostBasis() float64 {
	return h.Quantity * h.PurchasePrice
}
