package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// BreakerRateProvider stops calling next after maxFailures consecutive
// failures and rejects requests until openTimeout has passed.
type BreakerRateProvider struct {
	breaker *gobreaker.CircuitBreaker
	next    RateProvider
}

func NewBreakerRateProvider(next RateProvider, maxFailures uint32, openTimeout time.Duration, logger *slog.Logger) *BreakerRateProvider {
	settings := gobreaker.Settings{
		Name:        "exchange-rates",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A pair the API does not know is not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	return &BreakerRateProvider{breaker: gobreaker.NewCircuitBreaker(settings), next: next}
}

func (p *BreakerRateProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.next.Rate(ctx, from, to)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return decimal.Zero, fmt.Errorf("rates API unavailable (%v): %w", err, apperrors.ErrUpstream)
		}
		return decimal.Zero, err
	}
	return result.(decimal.Decimal), nil
}
