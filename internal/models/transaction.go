package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID      int64           `db:"transaction_id"`
	AccountID          int64           `db:"account_id"`
	CategoryID         int64           `db:"category_id"`
	CurrencyID         int64           `db:"currency_id"`
	Amount             decimal.Decimal `db:"amount"`
	OriginalAmount     decimal.Decimal `db:"original_amount"`
	OriginalCurrencyID int64           `db:"original_currency_id"`
	Date               time.Time       `db:"date"`
	Description        string          `db:"description"`
	PlannedPaymentID   *int64          `db:"planned_payment_id"` // Nullable
	AuditFields
}
