package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxExchangeRateRepository implements portsrepo.ExchangeRateReader using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateReader = (*PgxExchangeRateRepository)(nil)

// FindExchangeRate retrieves the most recent exchange rate between two currencies.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	directRate, err := r.findRate(ctx, fromCurrency, toCurrency)
	if err == nil {
		return directRate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Fall back to the inverse pair.
	inverseRate, err := r.findRate(ctx, toCurrency, fromCurrency)
	if err == nil && !inverseRate.Rate.IsZero() {
		inverseRate.FromCurrencyCode = fromCurrency
		inverseRate.ToCurrencyCode = toCurrency
		inverseRate.Rate = decimal.NewFromInt(1).Div(inverseRate.Rate)
		return inverseRate, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + fromCurrency + " to " + toCurrency)
}

// findRate is a helper method to find the most recent exchange rate
func (r *PgxExchangeRateRepository) findRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	var m models.ExchangeRate
	err := r.db(ctx).QueryRow(ctx, `
		SELECT exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC
		LIMIT 1`,
		fromCurrency, toCurrency,
	).Scan(&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.DateEffective)
	if err != nil {
		return nil, notFoundOr(err, "exchange rate not found", "failed to find exchange rate")
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}
