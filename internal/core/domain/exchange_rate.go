package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a persisted conversion rate between two currency codes.
type ExchangeRate struct {
	ExchangeRateID   int64           `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
}
