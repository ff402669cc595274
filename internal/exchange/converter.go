package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Converter implements portssvc.CurrencyConverter.
type Converter struct {
	provider RateProvider
}

// NewConverter creates a converter backed by provider.
func NewConverter(provider RateProvider) *Converter {
	return &Converter{provider: provider}
}

// Convert returns amount expressed in toCode, rounded to the minor unit of
// that currency. Equal codes return amount unchanged.
func (c *Converter) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	from, err := lookupCurrency(fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := lookupCurrency(toCode)
	if err != nil {
		return decimal.Zero, err
	}
	if from.Code == to.Code {
		return amount, nil
	}

	rate, err := c.provider.Rate(ctx, from.Code, to.Code)
	if err != nil {
		return decimal.Zero, err
	}
	converted := amount.Mul(rate).Round(int32(to.Fraction))
	middleware.GetLoggerFromCtx(ctx).Debug("Converted amount",
		slog.String("from", from.Code),
		slog.String("to", to.Code),
		slog.String("rate", rate.String()))
	return converted, nil
}

// Warm fetches the rate from base to every other code concurrently so later
// conversions hit the cache. The first failure is returned.
func (c *Converter) Warm(ctx context.Context, base string, codes []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, code := range codes {
		if strings.EqualFold(code, base) {
			continue
		}
		g.Go(func() error {
			_, err := c.provider.Rate(ctx, strings.ToUpper(base), strings.ToUpper(code))
			return err
		})
	}
	return g.Wait()
}

// ValidCode reports whether code is a known ISO 4217 currency code.
func ValidCode(code string) bool {
	return len(code) == 3 && money.GetCurrency(strings.ToUpper(code)) != nil
}

func lookupCurrency(code string) (*money.Currency, error) {
	c := money.GetCurrency(strings.ToUpper(code))
	if c == nil {
		return nil, fmt.Errorf("unknown currency code %q: %w", code, apperrors.ErrUpstream)
	}
	return c, nil
}
