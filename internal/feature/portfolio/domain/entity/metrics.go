package entity

// Metrics aggregates the derived dashboard values for a set of holdings.
type Metrics struct {
	TotalBalance   float64
	TotalCostBasis float64
	ChangeAmount   float64
	ChangePct      float64
	Allocation     []AllocationSlice
}

// AllocationSlice is one (name, value) pair of the allocation breakdown.
// The slice order follows first appearance in the holdings sequence so that
// repeated computations render identically.
type AllocationSlice struct {
	Name  string
	Value float64
}
