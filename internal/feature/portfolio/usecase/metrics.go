package usecase

import (
	"wealthwise_gateway/internal/feature/portfolio/domain/entity"
)

// EffectivePrice returns the current per-unit price for a holding: the quoted
// price when the table has one, otherwise the purchase price. The fallback
// makes a holding without a quote carry zero unrealized P&L.
func EffectivePrice(h entity.Holding, prices map[string]float64) float64 {
	if p, ok := prices[h.Symbol]; ok {
		return p
	}
	return h.PurchasePrice
}

// ComputeMetrics derives the aggregate dashboard values from the holdings
// sequence and the price table. It is pure: identical inputs produce
// identical outputs and neither argument is mutated.
func ComputeMetrics(holdings []entity.Holding, prices map[string]float64) entity.Metrics {
	var m entity.Metrics
	for _, h := range holdings {
		m.TotalCostBasis += h.CostBasis()
		m.TotalBalance += h.Quantity * EffectivePrice(h, prices)
	}
	m.ChangeAmount = m.TotalBalance - m.TotalCostBasis
	// Defined as zero on an empty cost basis so downstream formatting stays
	// total (never NaN or Inf).
	if m.TotalCostBasis > 0 {
		m.ChangePct = m.ChangeAmount / m.TotalCostBasis
	}
	m.Allocation = AllocationBy(holdings, prices, func(h entity.Holding) string {
		return string(h.AssetType)
	})
	return m
}

// AllocationBy groups current value under an arbitrary key, ordered by first
// appearance in the holdings sequence. The dashboard groups by asset type;
// the key function exists so the same reduction can regroup by owner once
// the backend supplies an identity field.
func AllocationBy(holdings []entity.Holding, prices map[string]float64, key func(entity.Holding) string) []entity.AllocationSlice {
	out := make([]entity.AllocationSlice, 0)
	index := make(map[string]int)
	for _, h := range holdings {
		k := key(h)
		value := h.Quantity * EffectivePrice(h, prices)
		if i, ok := index[k]; ok {
			out[i].Value += value
			continue
		}
		index[k] = len(out)
		out = append(out, entity.AllocationSlice{Name: k, Value: value})
	}
	return out
}
