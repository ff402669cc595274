package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvc interface. Every mutation runs in a
// single unit of work: account and budget balances change together with the
// transaction row or not at all.
type ledgerService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	userRepo     portsrepo.UserReader
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	currencyRepo portsrepo.CurrencyReader
	budgetRepo   portsrepo.BudgetRepository
	plannedRepo  portsrepo.PlannedPaymentReader
	txnRepo      portsrepo.TransactionRepositoryFacade
	converter    portssvc.CurrencyConverter
	publisher    portssvc.LedgerEventPublisher
	views        viewBuilder
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(repos portsrepo.RepositoryProvider, converter portssvc.CurrencyConverter, options ...ServiceOption) portssvc.LedgerSvc {
	opts := applyOptions(options)
	return &ledgerService{
		BaseService:  BaseService{now: opts.now},
		txManager:    repos.TxManager,
		userRepo:     repos.UserRepo,
		accountRepo:  repos.AccountRepo,
		categoryRepo: repos.CategoryRepo,
		currencyRepo: repos.CurrencyRepo,
		budgetRepo:   repos.BudgetRepo,
		plannedRepo:  repos.PlannedPaymentRepo,
		txnRepo:      repos.TransactionRepo,
		converter:    converter,
		publisher:    opts.publisher,
		views: viewBuilder{
			categoryRepo: repos.CategoryRepo,
			currencyRepo: repos.CurrencyRepo,
			plannedRepo:  repos.PlannedPaymentRepo,
		},
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actingUserID int64) (*domain.TransactionView, error) {
	var view domain.TransactionView
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireUser(ctx, actingUserID); err != nil {
			return err
		}
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, req.AccountID)
		if err != nil {
			return fmt.Errorf("failed to load account %d: %w", req.AccountID, err)
		}
		category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to load category %d: %w", req.CategoryID, err)
		}
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyID)
		if err != nil {
			return fmt.Errorf("failed to load currency %d: %w", req.CurrencyID, err)
		}
		var planned *domain.PlannedPayment
		if req.PlannedPaymentID != nil {
			planned, err = s.plannedRepo.FindPlannedPaymentByID(ctx, *req.PlannedPaymentID)
			if err != nil {
				return fmt.Errorf("failed to load planned payment %d: %w", *req.PlannedPaymentID, err)
			}
		}
		accountCurrency, err := s.currencyRepo.FindCurrencyByID(ctx, account.CurrencyID)
		if err != nil {
			return fmt.Errorf("failed to load account currency %d: %w", account.CurrencyID, err)
		}

		if err := s.AuthorizeOwner(ctx, account.OwnerID, actingUserID, "account"); err != nil {
			return err
		}

		amount, err := s.convert(ctx, *currency, *accountCurrency, req.Amount)
		if err != nil {
			return err
		}
		if category.IsExpense() && !account.CanCover(amount) {
			return insufficientFunds(account.AccountID)
		}

		now := s.Now()
		balance := account.Balance.Add(category.Type.Signed(amount))
		if err := s.accountRepo.UpdateAccountBalance(ctx, account.AccountID, balance, actingUserID, now); err != nil {
			return fmt.Errorf("failed to update balance of account %d: %w", account.AccountID, err)
		}
		if category.IsExpense() {
			if err := s.adjustBudgets(ctx, account.OwnerID, category.CategoryID, req.Date, *accountCurrency, amount.Neg()); err != nil {
				return err
			}
		}

		txn := domain.Transaction{
			AccountID:          account.AccountID,
			CategoryID:         category.CategoryID,
			CurrencyID:         accountCurrency.CurrencyID,
			Amount:             amount,
			OriginalAmount:     req.Amount,
			OriginalCurrencyID: currency.CurrencyID,
			Date:               req.Date,
			Description:        req.Description,
			PlannedPaymentID:   req.PlannedPaymentID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actingUserID,
			},
		}
		if err := s.txnRepo.SaveTransaction(ctx, &txn); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}

		view = domain.TransactionView{
			Transaction:    txn,
			Category:       *category,
			Currency:       *accountCurrency,
			PlannedPayment: planned,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction",
			slog.Int64("account_id", req.AccountID),
			slog.Int64("acting_user_id", actingUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.Int64("transaction_id", view.TransactionID),
		slog.Int64("account_id", view.AccountID))
	s.publish(ctx, domain.TransactionCreated, view, actingUserID)
	return &view, nil
}

func (s *ledgerService) EditTransaction(ctx context.Context, transactionID int64, req dto.EditTransactionRequest, actingUserID int64) (*domain.TransactionView, error) {
	var view domain.TransactionView
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		txn, account, accountCurrency, err := s.loadForMutation(ctx, transactionID, actingUserID)
		if err != nil {
			return err
		}

		oldCategory, err := s.categoryRepo.FindCategoryByID(ctx, txn.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to load category %d: %w", txn.CategoryID, err)
		}
		oldAmount, err := s.storedAmount(ctx, *txn, *accountCurrency)
		if err != nil {
			return err
		}

		balance := account.Balance.Sub(oldCategory.Type.Signed(oldAmount))
		if oldCategory.IsExpense() {
			if err := s.adjustBudgets(ctx, account.OwnerID, oldCategory.CategoryID, txn.Date, *accountCurrency, oldAmount); err != nil {
				return err
			}
		}

		newCategory, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to load category %d: %w", req.CategoryID, err)
		}
		newCurrency, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyID)
		if err != nil {
			return fmt.Errorf("failed to load currency %d: %w", req.CurrencyID, err)
		}
		newAmount, err := s.convert(ctx, *newCurrency, *accountCurrency, req.Amount)
		if err != nil {
			return err
		}
		if newCategory.IsExpense() && balance.LessThan(newAmount) {
			return insufficientFunds(account.AccountID)
		}

		now := s.Now()
		balance = balance.Add(newCategory.Type.Signed(newAmount))
		if err := s.accountRepo.UpdateAccountBalance(ctx, account.AccountID, balance, actingUserID, now); err != nil {
			return fmt.Errorf("failed to update balance of account %d: %w", account.AccountID, err)
		}
		if newCategory.IsExpense() {
			if err := s.adjustBudgets(ctx, account.OwnerID, newCategory.CategoryID, req.Date, *accountCurrency, newAmount.Neg()); err != nil {
				return err
			}
		}

		txn.CategoryID = newCategory.CategoryID
		txn.CurrencyID = accountCurrency.CurrencyID
		txn.Amount = newAmount
		txn.OriginalAmount = req.Amount
		txn.OriginalCurrencyID = newCurrency.CurrencyID
		txn.Date = req.Date
		txn.Description = req.Description
		txn.Touch(actingUserID, now)
		if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update transaction %d: %w", txn.TransactionID, err)
		}

		view, err = s.views.buildOne(ctx, *txn)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to edit transaction",
			slog.Int64("transaction_id", transactionID),
			slog.Int64("acting_user_id", actingUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction edited", slog.Int64("transaction_id", transactionID))
	s.publish(ctx, domain.TransactionEdited, view, actingUserID)
	return &view, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID int64, actingUserID int64) (*domain.TransactionView, error) {
	var view domain.TransactionView
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		txn, account, accountCurrency, err := s.loadForMutation(ctx, transactionID, actingUserID)
		if err != nil {
			return err
		}

		category, err := s.categoryRepo.FindCategoryByID(ctx, txn.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to load category %d: %w", txn.CategoryID, err)
		}
		amount, err := s.storedAmount(ctx, *txn, *accountCurrency)
		if err != nil {
			return err
		}

		balance := account.Balance.Sub(category.Type.Signed(amount))
		if err := s.accountRepo.UpdateAccountBalance(ctx, account.AccountID, balance, actingUserID, s.Now()); err != nil {
			return fmt.Errorf("failed to update balance of account %d: %w", account.AccountID, err)
		}
		if category.IsExpense() {
			if err := s.adjustBudgets(ctx, account.OwnerID, category.CategoryID, txn.Date, *accountCurrency, amount); err != nil {
				return err
			}
		}

		view, err = s.views.buildOne(ctx, *txn)
		if err != nil {
			return err
		}
		if err := s.txnRepo.DeleteTransaction(ctx, txn.TransactionID); err != nil {
			return fmt.Errorf("failed to delete transaction %d: %w", txn.TransactionID, err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.Int64("transaction_id", transactionID),
			slog.Int64("acting_user_id", actingUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", transactionID))
	s.publish(ctx, domain.TransactionDeleted, view, actingUserID)
	return &view, nil
}

// loadForMutation locks the transaction and then its account, and checks that
// the acting user owns the account.
func (s *ledgerService) loadForMutation(ctx context.Context, transactionID, actingUserID int64) (*domain.Transaction, *domain.Account, *domain.Currency, error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, nil, nil, err
	}
	txn, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, transactionID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load transaction %d: %w", transactionID, err)
	}
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, txn.AccountID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load account %d: %w", txn.AccountID, err)
	}
	if err := s.AuthorizeOwner(ctx, account.OwnerID, actingUserID, "account"); err != nil {
		return nil, nil, nil, err
	}
	accountCurrency, err := s.currencyRepo.FindCurrencyByID(ctx, account.CurrencyID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load account currency %d: %w", account.CurrencyID, err)
	}
	return txn, account, accountCurrency, nil
}

func (s *ledgerService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to load acting user %d: %w", userID, err)
	}
	return nil
}

// storedAmount expresses a stored transaction amount in the account currency.
// Rows written by this service are already in it, so this only converts rows
// whose currency drifted from the account's.
func (s *ledgerService) storedAmount(ctx context.Context, txn domain.Transaction, accountCurrency domain.Currency) (decimal.Decimal, error) {
	if txn.CurrencyID == accountCurrency.CurrencyID {
		return txn.Amount, nil
	}
	stored, err := s.currencyRepo.FindCurrencyByID(ctx, txn.CurrencyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load currency %d: %w", txn.CurrencyID, err)
	}
	return s.convert(ctx, *stored, accountCurrency, txn.Amount)
}

// adjustBudgets adds delta, expressed in from, to every budget of the owner
// for the category whose window contains date.
func (s *ledgerService) adjustBudgets(ctx context.Context, ownerID, categoryID int64, date time.Time, from domain.Currency, delta decimal.Decimal) error {
	budgets, err := s.budgetRepo.FindOverlappingBudgetsForUpdate(ctx, ownerID, categoryID, date)
	if err != nil {
		return fmt.Errorf("failed to load budgets of category %d: %w", categoryID, err)
	}
	for _, budget := range budgets {
		to := from
		if budget.CurrencyID != from.CurrencyID {
			c, err := s.currencyRepo.FindCurrencyByID(ctx, budget.CurrencyID)
			if err != nil {
				return fmt.Errorf("failed to load currency %d of budget %d: %w", budget.CurrencyID, budget.BudgetID, err)
			}
			to = *c
		}
		converted, err := s.convert(ctx, from, to, delta)
		if err != nil {
			return err
		}
		if err := s.budgetRepo.UpdateBudgetBalance(ctx, budget.BudgetID, budget.Balance.Add(converted)); err != nil {
			return fmt.Errorf("failed to update balance of budget %d: %w", budget.BudgetID, err)
		}
		s.LogDebug(ctx, "Budget balance adjusted",
			slog.Int64("budget_id", budget.BudgetID),
			slog.String("delta", converted.String()))
	}
	return nil
}

func (s *ledgerService) convert(ctx context.Context, from, to domain.Currency, amount decimal.Decimal) (decimal.Decimal, error) {
	if from.CurrencyID == to.CurrencyID {
		return amount, nil
	}
	converted, err := s.converter.Convert(ctx, from.Code, to.Code, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert %s from %s to %s: %w", amount, from.Code, to.Code, err)
	}
	return converted, nil
}

// publish announces a committed mutation. Delivery failures are logged, not returned.
func (s *ledgerService) publish(ctx context.Context, eventType domain.LedgerEventType, view domain.TransactionView, actingUserID int64) {
	if s.publisher == nil {
		return
	}
	event := domain.NewLedgerEvent(eventType, view, actingUserID, s.Now())
	// The mutation is committed, so a client hanging up must not drop its event.
	if err := s.publisher.PublishLedgerEvent(context.WithoutCancel(ctx), event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("event_type", string(eventType)),
			slog.Int64("transaction_id", view.TransactionID))
	}
}

func insufficientFunds(accountID int64) error {
	return apperrors.NewUnauthorizedError(fmt.Sprintf("insufficient funds in account %d", accountID))
}
