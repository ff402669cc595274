package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	var (
		user domain.User
		ok   bool
	)
	s.do(ctx, func() { user, ok = s.users[userID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}
	return &user, nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	var (
		account domain.Account
		ok      bool
	)
	s.do(ctx, func() { account, ok = s.accounts[accountID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %d not found", accountID))
	}
	return &account, nil
}

// FindAccountByIDForUpdate is FindAccountByID; the unit of work already holds the store lock.
func (s *Store) FindAccountByIDForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.FindAccountByID(ctx, accountID)
}

func (s *Store) UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal, userID int64, now time.Time) error {
	var ok bool
	s.do(ctx, func() {
		var account domain.Account
		account, ok = s.accounts[accountID]
		if !ok {
			return
		}
		account.Balance = balance
		account.Touch(userID, now)
		s.accounts[accountID] = account
	})
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %d not found", accountID))
	}
	return nil
}

func (s *Store) FindOverlappingBudgetsForUpdate(ctx context.Context, ownerID, categoryID int64, date time.Time) ([]domain.Budget, error) {
	var budgets []domain.Budget
	s.do(ctx, func() {
		for _, b := range s.budgets {
			if b.OwnerID == ownerID && b.CategoryID == categoryID && b.Covers(date) {
				budgets = append(budgets, b)
			}
		}
	})
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].BudgetID < budgets[j].BudgetID })
	return budgets, nil
}

func (s *Store) UpdateBudgetBalance(ctx context.Context, budgetID int64, balance decimal.Decimal) error {
	var ok bool
	s.do(ctx, func() {
		var budget domain.Budget
		budget, ok = s.budgets[budgetID]
		if !ok {
			return
		}
		budget.Balance = balance
		s.budgets[budgetID] = budget
	})
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("budget %d not found", budgetID))
	}
	return nil
}

// FindBudgetByID is used by tests and the demo seed to inspect budget balances.
func (s *Store) FindBudgetByID(ctx context.Context, budgetID int64) (*domain.Budget, error) {
	var (
		budget domain.Budget
		ok     bool
	)
	s.do(ctx, func() { budget, ok = s.budgets[budgetID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("budget %d not found", budgetID))
	}
	return &budget, nil
}

func (s *Store) FindPlannedPaymentByID(ctx context.Context, plannedPaymentID int64) (*domain.PlannedPayment, error) {
	var (
		p  domain.PlannedPayment
		ok bool
	)
	s.do(ctx, func() { p, ok = s.planned[plannedPaymentID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("planned payment %d not found", plannedPaymentID))
	}
	return &p, nil
}
