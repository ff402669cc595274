package pgsql

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:          newPgxTransactionManager(dbPool),
		UserRepo:           newPgxUserRepository(dbPool),
		AccountRepo:        newPgxAccountRepository(dbPool),
		CategoryRepo:       newPgxCategoryRepository(dbPool),
		CurrencyRepo:       newPgxCurrencyRepository(dbPool),
		BudgetRepo:         newPgxBudgetRepository(dbPool),
		PlannedPaymentRepo: newPgxPlannedPaymentRepository(dbPool),
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		ExchangeRateRepo:   newPgxExchangeRateRepository(dbPool),
	}
}
