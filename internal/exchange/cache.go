package exchange

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const cacheKeyPrefix = "fx:"

// CachedRateProvider keeps rates returned by next in redis for ttl.
// Redis failures are logged and fall through to next.
type CachedRateProvider struct {
	client *redis.Client
	next   RateProvider
	ttl    time.Duration
}

func NewCachedRateProvider(client *redis.Client, next RateProvider, ttl time.Duration) *CachedRateProvider {
	return &CachedRateProvider{client: client, next: next, ttl: ttl}
}

func cacheKey(from, to string) string {
	return cacheKeyPrefix + from + ":" + to
}

func (p *CachedRateProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := cacheKey(from, to)

	cached, err := p.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if rate, parseErr := decimal.NewFromString(cached); parseErr == nil {
			return rate, nil
		}
		logger.Warn("Discarding malformed cached rate", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger.Warn("Rate cache unavailable", slog.String("key", key), slog.String("error", err.Error()))
	}

	rate, err := p.next.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if err := p.client.Set(ctx, key, rate.String(), p.ttl).Err(); err != nil {
		logger.Warn("Failed to cache rate", slog.String("key", key), slog.String("error", err.Error()))
	}
	return rate, nil
}
