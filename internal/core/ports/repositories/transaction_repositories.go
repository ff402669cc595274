package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// TransactionFilter narrows a transaction listing to one account and an
// inclusive date range, optionally to a single category.
type TransactionFilter struct {
	AccountID  int64
	CategoryID *int64
	StartDate  time.Time
	EndDate    time.Time
}

// TransactionReader defines read operations for transaction data.
// Listings are ordered by date descending, then by ID descending, and
// return the total number of matches alongside the requested page.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	ListTransactionsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Transaction, int, error)
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, int, error)
	ListTransactionsFiltered(ctx context.Context, filter TransactionFilter, limit, offset int) ([]domain.Transaction, int, error)
	// ListTransactionsByAccountAndDateRange returns every transaction of the
	// account dated within [start, end], oldest first.
	ListTransactionsByAccountAndDateRange(ctx context.Context, accountID int64, start, end time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction inserts the transaction and sets its TransactionID.
	SaveTransaction(ctx context.Context, transaction *domain.Transaction) error
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// TransactionTransactionSupport defines locking reads used by the ledger.
type TransactionTransactionSupport interface {
	FindTransactionByIDForUpdate(ctx context.Context, transactionID int64) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTransactionSupport
}
