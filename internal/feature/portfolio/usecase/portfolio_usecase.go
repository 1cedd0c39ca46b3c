package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"wealthwise_gateway/internal/feature/portfolio/domain/entity"
)

// BackendGateway abstracts the remote portfolio API.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BackendGateway interface {
	// FetchHoldings retrieves the full holdings list for the signed-in user.
	FetchHoldings(ctx context.Context) ([]entity.Holding, error)

	// CreateHolding persists a new holding remotely and returns the record
	// with its server-assigned id.
	CreateHolding(ctx context.Context, in NewHolding) (entity.Holding, error)

	// DeleteHolding removes one holding remotely.
	DeleteHolding(ctx context.Context, id string) error
}

// SnapshotRepository persists the last fetched holdings locally so the
// dashboard can render something when the backend is unreachable.
type SnapshotRepository interface {
	Replace(ctx context.Context, holdings []entity.Holding) error
	Load(ctx context.Context) ([]entity.Holding, error)
}

// PriceProvider supplies the current symbol to price table.
type PriceProvider interface {
	Prices() map[string]float64
}

// NewHolding is the validated input for creating a holding.
type NewHolding struct {
	AssetType     entity.AssetType
	Symbol        string
	Quantity      float64
	PurchasePrice float64
}

// Validate checks the form-level invariants before any network call is made.
func (n NewHolding) Validate() error {
	if n.Symbol == "" {
		return ErrEmptySymbol
	}
	if !n.AssetType.Valid() {
		return ErrUnknownAssetType
	}
	if n.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	if n.PurchasePrice <= 0 {
		return ErrNonPositivePrice
	}
	return nil
}

// portfolioUsecase orchestrates the holdings store, the remote backend, the
// local snapshot and the derived metrics. State only mutates after backend
// confirmation; there are no optimistic updates.
type portfolioUsecase struct {
	store    *Store
	backend  BackendGateway
	snapshot SnapshotRepository
	prices   PriceProvider

	removeMu sync.Mutex
	removing map[string]struct{}

	metricsMu sync.RWMutex
	metrics   entity.Metrics
}

// NewPortfolioUsecase wires the usecase and subscribes it to store changes so
// the cached metrics are recomputed on every mutation. snapshot may be nil.
func NewPortfolioUsecase(store *Store, backend BackendGateway, snapshot SnapshotRepository, prices PriceProvider) *portfolioUsecase {
	u := &portfolioUsecase{
		store:    store,
		backend:  backend,
		snapshot: snapshot,
		prices:   prices,
		removing: make(map[string]struct{}),
	}
	store.Subscribe(u.Recompute)
	u.Recompute()
	return u
}

// Recompute rebuilds the cached metrics from the current holdings and price
// table. It is also registered as the change callback for the price table.
func (u *portfolioUsecase) Recompute() {
	m := ComputeMetrics(u.store.Holdings(), u.prices.Prices())
	u.metricsMu.Lock()
	u.metrics = m
	u.metricsMu.Unlock()
}

// Metrics returns the most recently computed aggregates.
func (u *portfolioUsecase) Metrics() entity.Metrics {
	u.metricsMu.RLock()
	defer u.metricsMu.RUnlock()
	return u.metrics
}

// Holdings returns the current ordered sequence.
func (u *portfolioUsecase) Holdings() []entity.Holding {
	return u.store.Holdings()
}

// Refresh fetches the holdings list and replaces the store wholesale. A read
// failure degrades gracefully: the local snapshot is installed instead, or an
// empty list when no snapshot exists. Successful fetches overwrite the
// snapshot.
func (u *portfolioUsecase) Refresh(ctx context.Context) error {
	holdings, err := u.backend.FetchHoldings(ctx)
	if err != nil {
		slog.Warn("holdings fetch failed, falling back to local snapshot", "error", err)
		u.store.ReplaceAll(u.loadSnapshot(ctx))
		return nil
	}

	u.store.ReplaceAll(holdings)

	if u.snapshot != nil {
		if err := u.snapshot.Replace(ctx, holdings); err != nil {
			slog.Warn("snapshot write failed", "error", err)
		}
	}
	return nil
}

func (u *portfolioUsecase) loadSnapshot(ctx context.Context) []entity.Holding {
	if u.snapshot == nil {
		return nil
	}
	holdings, err := u.snapshot.Load(ctx)
	if err != nil {
		slog.Warn("snapshot read failed", "error", err)
		return nil
	}
	return holdings
}

// Add validates the input, creates the holding remotely and prepends the
// server-assigned record to the store.
func (u *portfolioUsecase) Add(ctx context.Context, in NewHolding) (entity.Holding, error) {
	if err := in.Validate(); err != nil {
		return entity.Holding{}, err
	}
	created, err := u.backend.CreateHolding(ctx, in)
	if err != nil {
		return entity.Holding{}, fmt.Errorf("create holding: %w", err)
	}
	u.store.Insert(created)
	return created, nil
}

// Remove deletes the holding remotely and then from the store. A second
// removal of an id whose first removal is still in flight is rejected with
// ErrRemovalPending; removal of an id the store does not contain is a no-op.
func (u *portfolioUsecase) Remove(ctx context.Context, id string) error {
	u.removeMu.Lock()
	if _, busy := u.removing[id]; busy {
		u.removeMu.Unlock()
		return ErrRemovalPending
	}
	u.removing[id] = struct{}{}
	u.removeMu.Unlock()

	defer func() {
		u.removeMu.Lock()
		delete(u.removing, id)
		u.removeMu.Unlock()
	}()

	if err := u.backend.DeleteHolding(ctx, id); err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	u.store.Remove(id)
	return nil
}

// DemoHoldings returns the starter positions used when demo seeding is
// enabled and neither the backend nor the snapshot has data.
func DemoHoldings() []entity.Holding {
	return []entity.Holding{
		{ID: "demo-aapl", AssetType: entity.AssetStock, Symbol: "AAPL", Quantity: 5, PurchasePrice: 185.25},
		{ID: "demo-btc", AssetType: entity.AssetCrypto, Symbol: "BTC", Quantity: 0.08, PurchasePrice: 64000},
		{ID: "demo-vfiax", AssetType: entity.AssetMutualFund, Symbol: "VFIAX", Quantity: 12, PurchasePrice: 410.5},
	}
}
