package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryType decides the direction a transaction moves an account balance.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == Income || t == Expense
}

// SignFor returns +1 for income and -1 for expense categories.
func SignFor(t CategoryType) int64 {
	if t == Income {
		return 1
	}
	return -1
}

// Signed returns amount with the sign of the category type applied, i.e. the
// delta a transaction of this type contributes to an account balance.
func (t CategoryType) Signed(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(SignFor(t)))
}

// ParseCategoryType converts a stored value into a CategoryType.
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown category type %q", s)
	}
	return t, nil
}

// Category classifies transactions. Budgets are tracked per category.
type Category struct {
	CategoryID int64        `json:"categoryID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	IconURL    string       `json:"iconURL,omitempty"`
}

// IsExpense reports whether transactions of this category draw on budgets.
func (c Category) IsExpense() bool {
	return c.Type == Expense
}
