package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
)

// LedgerSvc mutates transactions together with the account and budget
// balances they affect. Each call is a single unit of work.
type LedgerSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actingUserID int64) (*domain.TransactionView, error)
	EditTransaction(ctx context.Context, transactionID int64, req dto.EditTransactionRequest, actingUserID int64) (*domain.TransactionView, error)
	// DeleteTransaction removes the transaction and returns its last state.
	DeleteTransaction(ctx context.Context, transactionID int64, actingUserID int64) (*domain.TransactionView, error)
}

// TransactionQuerySvc defines read operations for transactions. An empty
// result is reported as apperrors.ErrNotFound rather than an empty page.
type TransactionQuerySvc interface {
	GetTransactionByID(ctx context.Context, transactionID int64, actingUserID int64) (*domain.TransactionView, error)
	ListTransactionsForUser(ctx context.Context, userID int64, actingUserID int64, params pagination.Params) (*pagination.Page[domain.TransactionView], error)
	ListTransactionsForAccount(ctx context.Context, accountID int64, actingUserID int64, params pagination.Params) (*pagination.Page[domain.TransactionView], error)
	ListFilteredTransactions(ctx context.Context, filter dto.TransactionFilter, actingUserID int64, params pagination.Params) (*pagination.Page[domain.TransactionView], error)
	// ListTransactionsInRange is an unpaged lookup for internal callers that
	// have already authorized access to the account.
	ListTransactionsInRange(ctx context.Context, accountID int64, start, end time.Time) ([]domain.TransactionView, error)
	GetAccountStatement(ctx context.Context, accountID int64, actingUserID int64, start, end time.Time) (*domain.AccountStatement, error)
}

// LedgerEventPublisher announces committed ledger mutations.
type LedgerEventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error
}
