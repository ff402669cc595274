package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget tracks spending in one category for one user over a validity window.
// Its balance is kept in the budget's own currency.
type Budget struct {
	BudgetID   int64           `json:"budgetID"`
	OwnerID    int64           `json:"ownerID"`
	CategoryID int64           `json:"categoryID"`
	CurrencyID int64           `json:"currencyID"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
}

// Covers reports whether date falls strictly inside the budget window.
func (b Budget) Covers(date time.Time) bool {
	return b.StartDate.Before(date) && b.EndDate.After(date)
}
