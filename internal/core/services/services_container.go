package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, converter portssvc.CurrencyConverter, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:           NewLedgerService(repos, converter, options...),
		TransactionQuery: NewTransactionQueryService(repos, options...),
		Currency:         NewCurrencyService(repos.CurrencyRepo, converter),
		Category:         NewCategoryService(repos.CategoryRepo),
	}
}
