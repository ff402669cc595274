package exchange_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRate(rate string) exchange.RateProvider {
	return exchange.RateProviderFunc(func(context.Context, string, string) (decimal.Decimal, error) {
		return decimal.RequireFromString(rate), nil
	})
}

func notFound() exchange.RateProvider {
	return exchange.RateProviderFunc(func(_ context.Context, from, to string) (decimal.Decimal, error) {
		return decimal.Zero, apperrors.NewNotFoundError("no rate " + from + to)
	})
}

func TestConvert_RoundsToTargetMinorUnit(t *testing.T) {
	ctx := context.Background()

	eur, err := exchange.NewConverter(fixedRate("0.91234")).Convert(ctx, "usd", "EUR", decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.Equal(t, "9.12", eur.StringFixed(2))

	jpy, err := exchange.NewConverter(fixedRate("151.678")).Convert(ctx, "USD", "JPY", decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.True(t, jpy.Equal(decimal.NewFromInt(1517)), "got %s", jpy)
}

func TestConvert_SameCodeSkipsProvider(t *testing.T) {
	var calls int32
	provider := exchange.RateProviderFunc(func(context.Context, string, string) (decimal.Decimal, error) {
		atomic.AddInt32(&calls, 1)
		return decimal.NewFromInt(2), nil
	})

	got, err := exchange.NewConverter(provider).Convert(context.Background(), "USD", "usd", decimal.RequireFromString("12.345"))

	require.NoError(t, err)
	assert.Equal(t, "12.345", got.String())
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestConvert_UnknownCode(t *testing.T) {
	_, err := exchange.NewConverter(fixedRate("1")).Convert(context.Background(), "USD", "XXQ", decimal.NewFromInt(1))

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestChainProvider(t *testing.T) {
	ctx := context.Background()

	rate, err := exchange.ChainProvider{notFound(), fixedRate("2")}.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(2)))

	_, err = exchange.ChainProvider{notFound(), notFound()}.Rate(ctx, "USD", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	boom := errors.New("db down")
	failing := exchange.RateProviderFunc(func(context.Context, string, string) (decimal.Decimal, error) {
		return decimal.Zero, boom
	})
	_, err = exchange.ChainProvider{failing, fixedRate("2")}.Rate(ctx, "USD", "EUR")
	assert.ErrorIs(t, err, boom)
}

func TestWarm_FetchesEveryOtherCode(t *testing.T) {
	var calls int32
	provider := exchange.RateProviderFunc(func(context.Context, string, string) (decimal.Decimal, error) {
		atomic.AddInt32(&calls, 1)
		return decimal.NewFromInt(1), nil
	})

	err := exchange.NewConverter(provider).Warm(context.Background(), "USD", []string{"USD", "EUR", "GBP", "JPY"})

	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestValidCode(t *testing.T) {
	assert.True(t, exchange.ValidCode("usd"))
	assert.False(t, exchange.ValidCode("ABCD"))
	assert.False(t, exchange.ValidCode("QQQ"))
}
