package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{UserID: m.UserID, Name: m.Name, Email: m.Email}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		OwnerID:     m.OwnerID,
		CurrencyID:  m.CurrencyID,
		Name:        m.Name,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:   m.BudgetID,
		OwnerID:    m.OwnerID,
		CategoryID: m.CategoryID,
		CurrencyID: m.CurrencyID,
		Name:       m.Name,
		Balance:    m.Balance,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
	}
}

// ToDomainPlannedPayment converts a model PlannedPayment to a domain PlannedPayment
func ToDomainPlannedPayment(m models.PlannedPayment) domain.PlannedPayment {
	return domain.PlannedPayment{
		PlannedPaymentID: m.PlannedPaymentID,
		OwnerID:          m.OwnerID,
		Name:             m.Name,
		Amount:           m.Amount,
		DueDate:          m.DueDate,
	}
}
