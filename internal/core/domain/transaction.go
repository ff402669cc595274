package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense booked against an account.
// Amount and CurrencyID are always expressed in the account's currency; the
// values the user entered are kept in OriginalAmount and OriginalCurrencyID.
type Transaction struct {
	TransactionID      int64           `json:"transactionID"`
	AccountID          int64           `json:"accountID"`
	CategoryID         int64           `json:"categoryID"`
	CurrencyID         int64           `json:"currencyID"`
	Amount             decimal.Decimal `json:"amount"`
	OriginalAmount     decimal.Decimal `json:"originalAmount"`
	OriginalCurrencyID int64           `json:"originalCurrencyID"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	PlannedPaymentID   *int64          `json:"plannedPaymentID,omitempty"`
	AuditFields
}

// IsMultiCurrency reports whether the transaction was entered in a currency
// other than the account's.
func (t Transaction) IsMultiCurrency() bool {
	return t.OriginalCurrencyID != 0 && t.OriginalCurrencyID != t.CurrencyID
}

// TransactionView is the read model returned for a transaction: the record
// itself plus the reference data needed to present it.
type TransactionView struct {
	Transaction
	Category       Category        `json:"category"`
	Currency       Currency        `json:"currency"`
	PlannedPayment *PlannedPayment `json:"plannedPayment,omitempty"`
}
