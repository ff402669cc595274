package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEventType names a committed ledger mutation.
type LedgerEventType string

const (
	TransactionCreated LedgerEventType = "transaction.created"
	TransactionEdited  LedgerEventType = "transaction.edited"
	TransactionDeleted LedgerEventType = "transaction.deleted"
)

// LedgerEvent is emitted after a ledger unit of work commits.
type LedgerEvent struct {
	Type          LedgerEventType `json:"type"`
	TransactionID int64           `json:"transactionID"`
	AccountID     int64           `json:"accountID"`
	UserID        int64           `json:"userID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// NewLedgerEvent builds an event for the given view.
func NewLedgerEvent(eventType LedgerEventType, view TransactionView, userID int64, now time.Time) LedgerEvent {
	return LedgerEvent{
		Type:          eventType,
		TransactionID: view.TransactionID,
		AccountID:     view.AccountID,
		UserID:        userID,
		Amount:        view.Amount,
		CurrencyCode:  view.Currency.Code,
		OccurredAt:    now,
	}
}
