package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverter converts an amount between two currency codes.
// Implementations may fail when a code is unknown or the rate source is unavailable.
type CurrencyConverter interface {
	Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error)
}

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyConversionSvc previews conversions with the same converter the ledger uses.
type CurrencyConversionSvc interface {
	ConvertAmount(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyConversionSvc
}
