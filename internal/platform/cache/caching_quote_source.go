// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"wealthwise_gateway/internal/feature/market/domain/entity"
	"wealthwise_gateway/internal/feature/market/usecase"
)

// CachingQuoteSource decorates a QuoteSource with Redis caching. It
// implements the decorator pattern, transparently adding caching without
// modifying the underlying source.
type CachingQuoteSource struct {
	inner usecase.QuoteSource
	rdb   *redis.Client
	ttl   time.Duration
	key   string
}

// CachingQuoteSource must keep satisfying the source interface it wraps.
var _ usecase.QuoteSource = (*CachingQuoteSource)(nil)

// NewCachingQuoteSource decorates a QuoteSource with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If key is empty, it uses
// "market:quotes".
func NewCachingQuoteSource(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteSource, key string) *CachingQuoteSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if key == "" {
		key = "market:quotes"
	}
	return &CachingQuoteSource{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		key:   key,
	}
}

// FetchQuotes retrieves quotes, checking cache first then falling back to
// the remote source.
func (c *CachingQuoteSource) FetchQuotes(ctx context.Context) ([]entity.Quote, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchQuotes(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, c.key).Err()
	}

	// 2) Fallback to the remote source
	out, err := c.inner.FetchQuotes(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, c.key, b, c.ttl).Err()
	}

	return out, nil
}
