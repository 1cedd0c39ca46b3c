package di

import (
	"context"
	"log/slog"
	"os"

	"wealthwise_gateway/internal/feature/portfolio/usecase"
)

// SeedDemoHoldings writes the starter positions into an empty snapshot when
// SEED_DEMO_DATA=true. A snapshot that already has rows is left alone.
func SeedDemoHoldings(ctx context.Context, snapshot usecase.SnapshotRepository) {
	if os.Getenv("SEED_DEMO_DATA") != "true" {
		return
	}

	existing, err := snapshot.Load(ctx)
	if err != nil {
		slog.Warn("demo seed skipped, snapshot unreadable", "error", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	if err := snapshot.Replace(ctx, usecase.DemoHoldings()); err != nil {
		slog.Warn("demo seed failed", "error", err)
		return
	}
	slog.Info("demo holdings seeded")
}
