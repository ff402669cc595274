package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a user-owned money account. Its balance is always kept in
// the account's own currency.
type Account struct {
	AccountID  int64           `json:"accountID"`
	OwnerID    int64           `json:"ownerID"`    // FK -> users.user_id
	CurrencyID int64           `json:"currencyID"` // Home currency, FK -> currencies.currency_id
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	AuditFields
}

// IsOwnedBy reports whether userID owns the account.
func (a Account) IsOwnedBy(userID int64) bool {
	return a.OwnerID == userID
}

// CanCover reports whether the balance is large enough to pay amount.
func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
