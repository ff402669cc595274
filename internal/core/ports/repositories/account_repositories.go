package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AccountTransactionSupport defines operations used while mutating balances.
// They must be called with a context produced by TransactionManager.WithinTx.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects the account and locks its row until the transaction ends.
	FindAccountByIDForUpdate(ctx context.Context, accountID int64) (*domain.Account, error)

	// UpdateAccountBalance writes the new balance of a locked account.
	UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal, userID int64, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountTransactionSupport
}
