// Package exchange converts amounts between currencies. A Converter asks a
// chain of RateProviders for the rate of a pair: persisted rates first, then
// the remote rates API behind a redis cache and a circuit breaker.
package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateProvider returns how many units of to one unit of from buys.
// A provider that does not know the pair returns an error matching
// apperrors.ErrNotFound so the next provider can be tried.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// RateProviderFunc adapts a function to RateProvider.
type RateProviderFunc func(ctx context.Context, from, to string) (decimal.Decimal, error)

func (f RateProviderFunc) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return f(ctx, from, to)
}

// ChainProvider asks each provider in turn until one knows the pair.
type ChainProvider []RateProvider

func (c ChainProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	for _, p := range c {
		rate, err := p.Rate(ctx, from, to)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, err
		}
	}
	return decimal.Zero, fmt.Errorf("no exchange rate available for %s to %s: %w", from, to, apperrors.ErrUpstream)
}
