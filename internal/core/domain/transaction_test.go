package domain_test

import (
	"testing"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_IsMultiCurrency(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name: "entered in the account currency",
			transaction: domain.Transaction{
				CurrencyID:         1,
				OriginalCurrencyID: 1,
				Amount:             decimal.NewFromInt(30),
				OriginalAmount:     decimal.NewFromInt(30),
			},
			want: false,
		},
		{
			name: "entered in EUR, booked in USD",
			transaction: domain.Transaction{
				CurrencyID:         1,
				OriginalCurrencyID: 2,
				Amount:             decimal.RequireFromString("32.40"),
				OriginalAmount:     decimal.NewFromInt(30),
			},
			want: true,
		},
		{
			name: "original currency not recorded",
			transaction: domain.Transaction{
				CurrencyID: 1,
				Amount:     decimal.NewFromInt(30),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.IsMultiCurrency())
		})
	}
}

func TestNewLedgerEvent(t *testing.T) {
	view := domain.TransactionView{
		Transaction: domain.Transaction{TransactionID: 9, AccountID: 4, Amount: decimal.NewFromInt(30)},
		Currency:    domain.Currency{CurrencyID: 1, Code: "USD"},
	}

	event := domain.NewLedgerEvent(domain.TransactionCreated, view, 3, fixedNow)

	assert.Equal(t, domain.TransactionCreated, event.Type)
	assert.Equal(t, int64(9), event.TransactionID)
	assert.Equal(t, int64(4), event.AccountID)
	assert.Equal(t, int64(3), event.UserID)
	assert.Equal(t, "USD", event.CurrencyCode)
	assert.True(t, event.Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, fixedNow, event.OccurredAt)
}
