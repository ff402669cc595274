package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		AccountID:          d.AccountID,
		CategoryID:         d.CategoryID,
		CurrencyID:         d.CurrencyID,
		Amount:             d.Amount,
		OriginalAmount:     d.OriginalAmount,
		OriginalCurrencyID: d.OriginalCurrencyID,
		Date:               d.Date,
		Description:        d.Description,
		PlannedPaymentID:   d.PlannedPaymentID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		AccountID:          m.AccountID,
		CategoryID:         m.CategoryID,
		CurrencyID:         m.CurrencyID,
		Amount:             m.Amount,
		OriginalAmount:     m.OriginalAmount,
		OriginalCurrencyID: m.OriginalCurrencyID,
		Date:               m.Date,
		Description:        m.Description,
		PlannedPaymentID:   m.PlannedPaymentID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
