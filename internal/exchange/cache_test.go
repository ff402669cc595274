package exchange_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/exchange"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingProvider(calls *int32, rate string) exchange.RateProvider {
	return exchange.RateProviderFunc(func(context.Context, string, string) (decimal.Decimal, error) {
		atomic.AddInt32(calls, 1)
		return decimal.RequireFromString(rate), nil
	})
}

func TestCachedRateProvider_CachesUntilExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	var calls int32
	provider := exchange.NewCachedRateProvider(client, countingProvider(&calls, "0.5"), time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rate, err := provider.Rate(ctx, "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.5")))
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	cached, err := mr.Get("fx:USD:EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.5", cached)

	mr.FastForward(2 * time.Hour)
	_, err = provider.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCachedRateProvider_IgnoresMalformedEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, mr.Set("fx:USD:EUR", "garbage"))

	var calls int32
	rate, err := exchange.NewCachedRateProvider(client, countingProvider(&calls, "0.7"), time.Hour).Rate(context.Background(), "USD", "EUR")

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.7")))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCachedRateProvider_FallsThroughWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	var calls int32
	rate, err := exchange.NewCachedRateProvider(client, countingProvider(&calls, "0.7"), time.Hour).Rate(context.Background(), "USD", "EUR")

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.7")))
}
