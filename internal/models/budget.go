package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a row of the budgets table.
type Budget struct {
	BudgetID   int64           `db:"budget_id"`
	OwnerID    int64           `db:"owner_id"`
	CategoryID int64           `db:"category_id"`
	CurrencyID int64           `db:"currency_id"`
	Name       string          `db:"name"`
	Balance    decimal.Decimal `db:"balance"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
}
