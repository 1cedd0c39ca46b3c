package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	marketusecase "wealthwise_gateway/internal/feature/market/usecase"
	"wealthwise_gateway/internal/platform/cache"
	"wealthwise_gateway/internal/shared/ratelimiter"
)

// NewQuoteUsecase builds the market usecase over a Redis-cached quote
// source. rdb may be nil, in which case the cache is bypassed and every
// refresh goes to the backend.
func NewQuoteUsecase(rdb *redis.Client, source marketusecase.QuoteSource) *marketusecase.QuoteUsecase {
	cached := cache.NewCachingQuoteSource(rdb, 5*time.Minute, source, "market:quotes")
	// The public market endpoint throttles aggressively; stay under it.
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	return marketusecase.NewQuoteUsecase(cached, limiter)
}
