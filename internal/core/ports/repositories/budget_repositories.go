package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetRepository defines the budget operations the ledger needs.
type BudgetRepository interface {
	// FindOverlappingBudgetsForUpdate returns, ordered by ID and locked, every
	// budget of ownerID for categoryID whose window strictly contains date.
	FindOverlappingBudgetsForUpdate(ctx context.Context, ownerID, categoryID int64, date time.Time) ([]domain.Budget, error)

	// UpdateBudgetBalance writes the new balance of a locked budget.
	UpdateBudgetBalance(ctx context.Context, budgetID int64, balance decimal.Decimal) error
}
