package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatement summarises an account's transactions over a date range.
// All totals are in the account's currency.
type AccountStatement struct {
	AccountID    int64             `json:"accountID"`
	StartDate    time.Time         `json:"startDate"`
	EndDate      time.Time         `json:"endDate"`
	TotalIncome  decimal.Decimal   `json:"totalIncome"`
	TotalExpense decimal.Decimal   `json:"totalExpense"`
	Net          decimal.Decimal   `json:"net"`
	Transactions []TransactionView `json:"transactions"`
}

// NewAccountStatement totals views by the type of their category.
func NewAccountStatement(accountID int64, start, end time.Time, views []TransactionView) AccountStatement {
	statement := AccountStatement{
		AccountID:    accountID,
		StartDate:    start,
		EndDate:      end,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Net:          decimal.Zero,
		Transactions: views,
	}
	for _, v := range views {
		if v.Category.Type == Income {
			statement.TotalIncome = statement.TotalIncome.Add(v.Amount)
		} else {
			statement.TotalExpense = statement.TotalExpense.Add(v.Amount)
		}
		statement.Net = statement.Net.Add(v.Category.Type.Signed(v.Amount))
	}
	return statement
}
