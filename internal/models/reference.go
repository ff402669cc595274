package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyID int64  `db:"currency_id"`
	Code       string `db:"code"`
	Name       string `db:"name"`
}

// Category is a row of the categories table.
type Category struct {
	CategoryID int64          `db:"category_id"`
	Name       string         `db:"name"`
	Type       string         `db:"type"`
	IconURL    sql.NullString `db:"icon_url"`
}

// PlannedPayment is a row of the planned_payments table.
type PlannedPayment struct {
	PlannedPaymentID int64           `db:"planned_payment_id"`
	OwnerID          int64           `db:"owner_id"`
	Name             string          `db:"name"`
	Amount           decimal.Decimal `db:"amount"`
	DueDate          time.Time       `db:"due_date"`
}

// ExchangeRate is a row of the exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID   int64           `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	DateEffective    time.Time       `db:"date_effective"`
}
