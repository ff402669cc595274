package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
)

type transactionQueryService struct {
	BaseService
	userRepo     portsrepo.UserReader
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	txnRepo      portsrepo.TransactionReader
	views        viewBuilder
}

// NewTransactionQueryService creates a new transaction query service.
func NewTransactionQueryService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.TransactionQuerySvc {
	opts := applyOptions(options)
	return &transactionQueryService{
		BaseService:  BaseService{now: opts.now},
		userRepo:     repos.UserRepo,
		accountRepo:  repos.AccountRepo,
		categoryRepo: repos.CategoryRepo,
		txnRepo:      repos.TransactionRepo,
		views: viewBuilder{
			categoryRepo: repos.CategoryRepo,
			currencyRepo: repos.CurrencyRepo,
			plannedRepo:  repos.PlannedPaymentRepo,
		},
	}
}

var _ portssvc.TransactionQuerySvc = (*transactionQueryService)(nil)

func (s *transactionQueryService) GetTransactionByID(ctx context.Context, transactionID int64, actingUserID int64) (*domain.TransactionView, error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", transactionID, err)
	}
	if _, err := s.ownedAccount(ctx, txn.AccountID, actingUserID); err != nil {
		return nil, err
	}
	view, err := s.views.buildOne(ctx, *txn)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *transactionQueryService) ListTransactionsForUser(ctx context.Context, userID int64, actingUserID int64, params pagination.Params) (*pagination.Page[domain.TransactionView], error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, userID, actingUserID, "user's transactions"); err != nil {
		return nil, err
	}
	items, total, err := s.txnRepo.ListTransactionsByOwner(ctx, userID, params.Limit(), params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of user %d: %w", userID, err)
	}
	return s.page(ctx, items, params, total, fmt.Sprintf("no transactions found for user %d", userID))
}

func (s *transactionQueryService) ListTransactionsForAccount(ctx context.Context, accountID int64, actingUserID int64, params pagination.Params) (*pagination.Page[domain.TransactionView], error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	if _, err := s.ownedAccount(ctx, accountID, actingUserID); err != nil {
		return nil, err
	}
	items, total, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, params.Limit(), params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of account %d: %w", accountID, err)
	}
	return s.page(ctx, items, params, total, fmt.Sprintf("no transactions found for account %d", accountID))
}

func (s *transactionQueryService) ListFilteredTransactions(ctx context.Context, filter dto.TransactionFilter, actingUserID int64, params pagination.Params) (*pagination.Page[domain.TransactionView], error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	if _, err := s.ownedAccount(ctx, filter.AccountID, actingUserID); err != nil {
		return nil, err
	}
	if filter.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *filter.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to get category %d: %w", *filter.CategoryID, err)
		}
	}
	if err := s.ValidateDateRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	items, total, err := s.txnRepo.ListTransactionsFiltered(ctx, portsrepo.TransactionFilter{
		AccountID:  filter.AccountID,
		CategoryID: filter.CategoryID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}, params.Limit(), params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to filter transactions of account %d: %w", filter.AccountID, err)
	}
	return s.page(ctx, items, params, total, "no transactions match the filter")
}

func (s *transactionQueryService) ListTransactionsInRange(ctx context.Context, accountID int64, start, end time.Time) ([]domain.TransactionView, error) {
	if err := s.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}
	items, err := s.txnRepo.ListTransactionsByAccountAndDateRange(ctx, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of account %d: %w", accountID, err)
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no transactions found for account %d in range", accountID))
	}
	return s.views.build(ctx, items)
}

func (s *transactionQueryService) GetAccountStatement(ctx context.Context, accountID int64, actingUserID int64, start, end time.Time) (*domain.AccountStatement, error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	if _, err := s.ownedAccount(ctx, accountID, actingUserID); err != nil {
		return nil, err
	}
	views, err := s.ListTransactionsInRange(ctx, accountID, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	statement := domain.NewAccountStatement(accountID, start, end, views)
	s.LogDebug(ctx, "Account statement built",
		slog.Int64("account_id", accountID),
		slog.Int("transactions", len(views)))
	return &statement, nil
}

func (s *transactionQueryService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to get acting user %d: %w", userID, err)
	}
	return nil
}

func (s *transactionQueryService) ownedAccount(ctx context.Context, accountID, actingUserID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}
	if err := s.AuthorizeOwner(ctx, account.OwnerID, actingUserID, "account"); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *transactionQueryService) page(ctx context.Context, items []domain.Transaction, params pagination.Params, total int, emptyMsg string) (*pagination.Page[domain.TransactionView], error) {
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError(emptyMsg)
	}
	views, err := s.views.build(ctx, items)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(views, params, total)
	return &page, nil
}
