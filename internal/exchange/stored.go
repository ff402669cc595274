package exchange

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// StoredRateProvider serves rates persisted in the exchange_rates table.
type StoredRateProvider struct {
	repo portsrepo.ExchangeRateReader
}

func NewStoredRateProvider(repo portsrepo.ExchangeRateReader) *StoredRateProvider {
	return &StoredRateProvider{repo: repo}
}

func (p *StoredRateProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	rate, err := p.repo.FindExchangeRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored rate %s to %s: %w", from, to, err)
	}
	return rate.Rate, nil
}
