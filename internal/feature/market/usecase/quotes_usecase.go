// Package usecase implements the business logic for the market feature.
package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"wealthwise_gateway/internal/feature/market/domain/entity"
)

// QuoteSource abstracts the market-data read.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteSource interface {
	// FetchQuotes retrieves the current quote list from the data source.
	FetchQuotes(ctx context.Context) ([]entity.Quote, error)
}

// Limiter throttles outbound refreshes.
type Limiter interface {
	WaitIfNeeded()
}

// QuoteUsecase owns the symbol to price table and the per-symbol history.
// The table is rebuilt fully on every successful refresh; a failed refresh
// keeps the previous (stale) table so the dashboard degrades instead of
// crashing.
type QuoteUsecase struct {
	source  QuoteSource
	limiter Limiter

	mu      sync.RWMutex
	prices  map[string]float64
	history map[string][]entity.ClosingPrice
	subs    []func()
}

// NewQuoteUsecase creates a QuoteUsecase. limiter may be nil.
func NewQuoteUsecase(source QuoteSource, limiter Limiter) *QuoteUsecase {
	return &QuoteUsecase{
		source:  source,
		limiter: limiter,
		prices:  make(map[string]float64),
		history: make(map[string][]entity.ClosingPrice),
	}
}

// Refresh rebuilds the price table and history from the source. Read failures
// are logged and swallowed: the previous table stays in place.
func (u *QuoteUsecase) Refresh(ctx context.Context) error {
	if u.limiter != nil {
		u.limiter.WaitIfNeeded()
	}

	quotes, err := u.source.FetchQuotes(ctx)
	if err != nil {
		slog.Warn("market data fetch failed, keeping stale prices", "error", err)
		return nil
	}

	prices := make(map[string]float64, len(quotes))
	history := make(map[string][]entity.ClosingPrice, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" {
			continue
		}
		prices[q.Symbol] = q.CurrentPrice
		if len(q.History) > 0 {
			history[q.Symbol] = q.History
		}
	}

	u.mu.Lock()
	u.prices = prices
	u.history = history
	subs := append([](func())(nil), u.subs...)
	u.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// Prices returns a copy of the current price table.
func (u *QuoteUsecase) Prices() map[string]float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make(map[string]float64, len(u.prices))
	for k, v := range u.prices {
		out[k] = v
	}
	return out
}

// Quotes returns the current symbols and prices, sorted by symbol so the
// select box renders identically across refreshes.
func (u *QuoteUsecase) Quotes() []entity.Quote {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]entity.Quote, 0, len(u.prices))
	for sym, price := range u.prices {
		out = append(out, entity.Quote{Symbol: sym, CurrentPrice: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// History returns the stored price history for a symbol.
func (u *QuoteUsecase) History(symbol string) ([]entity.ClosingPrice, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	h, ok := u.history[symbol]
	if !ok {
		return nil, false
	}
	return append([]entity.ClosingPrice(nil), h...), true
}

// Subscribe registers fn to run after every successful refresh.
func (u *QuoteUsecase) Subscribe(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.subs = append(u.subs, fn)
}
