package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxBudgetRepository implements portsrepo.BudgetRepository using pgxpool.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

// FindOverlappingBudgetsForUpdate locks and returns the budgets whose window strictly contains date.
func (r *PgxBudgetRepository) FindOverlappingBudgetsForUpdate(ctx context.Context, ownerID, categoryID int64, date time.Time) ([]domain.Budget, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT budget_id, owner_id, category_id, currency_id, name, balance, start_date, end_date
		FROM budgets
		WHERE owner_id = $1 AND category_id = $2 AND start_date < $3 AND end_date > $3
		ORDER BY budget_id
		FOR UPDATE`,
		ownerID, categoryID, date,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find budgets", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan budgets", err)
	}
	budgets := make([]domain.Budget, len(ms))
	for i, m := range ms {
		budgets[i] = mapping.ToDomainBudget(m)
	}
	return budgets, nil
}

// UpdateBudgetBalance writes the new balance of a budget.
func (r *PgxBudgetRepository) UpdateBudgetBalance(ctx context.Context, budgetID int64, balance decimal.Decimal) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `UPDATE budgets SET balance = $1 WHERE budget_id = $2`, balance, budgetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget balance", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("budget with ID %d not found", budgetID))
	}
	return nil
}
