package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID  int64           `db:"account_id"`
	OwnerID    int64           `db:"owner_id"`
	CurrencyID int64           `db:"currency_id"`
	Name       string          `db:"name"`
	Balance    decimal.Decimal `db:"balance"`
	AuditFields
}
