package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRepository implements portsrepo.CurrencyReader using pgxpool.
type PgxCurrencyRepository struct {
	BaseRepository
}

func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyReader = (*PgxCurrencyRepository)(nil)

// FindCurrencyByID retrieves a currency by its ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	var m models.Currency
	err := r.db(ctx).QueryRow(ctx,
		`SELECT currency_id, code, name FROM currencies WHERE currency_id = $1`, currencyID,
	).Scan(&m.CurrencyID, &m.Code, &m.Name)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("currency with ID %d not found", currencyID), "failed to find currency")
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// FindCurrencyByCode retrieves a currency by its ISO code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	code = strings.ToUpper(code)
	var m models.Currency
	err := r.db(ctx).QueryRow(ctx,
		`SELECT currency_id, code, name FROM currencies WHERE code = $1`, code,
	).Scan(&m.CurrencyID, &m.Code, &m.Name)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("currency with code %s not found", code), "failed to find currency")
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT currency_id, code, name FROM currencies ORDER BY code`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currencies", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan currencies", err)
	}
	currencies := make([]domain.Currency, len(ms))
	for i, m := range ms {
		currencies[i] = mapping.ToDomainCurrency(m)
	}
	return currencies, nil
}

// PgxCategoryRepository implements portsrepo.CategoryReader using pgxpool.
type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryReader = (*PgxCategoryRepository)(nil)

const selectCategories = `SELECT category_id, name, type, icon_url FROM categories`

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var m models.Category
	err := r.db(ctx).QueryRow(ctx, selectCategories+` WHERE category_id = $1`, categoryID).
		Scan(&m.CategoryID, &m.Name, &m.Type, &m.IconURL)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("category with ID %d not found", categoryID), "failed to find category")
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// ListCategories retrieves all categories ordered by ID.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, selectCategories+` ORDER BY category_id`)
}

// FindCategoriesByName matches name case-insensitively anywhere in the category name.
func (r *PgxCategoryRepository) FindCategoriesByName(ctx context.Context, name string) ([]domain.Category, error) {
	return r.list(ctx, selectCategories+` WHERE name ILIKE '%' || $1 || '%' ORDER BY category_id`, name)
}

func (r *PgxCategoryRepository) list(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan categories", err)
	}
	categories := make([]domain.Category, len(ms))
	for i, m := range ms {
		categories[i] = mapping.ToDomainCategory(m)
	}
	return categories, nil
}

// PgxPlannedPaymentRepository implements portsrepo.PlannedPaymentReader using pgxpool.
type PgxPlannedPaymentRepository struct {
	BaseRepository
}

func newPgxPlannedPaymentRepository(pool *pgxpool.Pool) *PgxPlannedPaymentRepository {
	return &PgxPlannedPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PlannedPaymentReader = (*PgxPlannedPaymentRepository)(nil)

// FindPlannedPaymentByID retrieves a planned payment by its ID.
func (r *PgxPlannedPaymentRepository) FindPlannedPaymentByID(ctx context.Context, plannedPaymentID int64) (*domain.PlannedPayment, error) {
	var m models.PlannedPayment
	err := r.db(ctx).QueryRow(ctx, `
		SELECT planned_payment_id, owner_id, name, amount, due_date
		FROM planned_payments WHERE planned_payment_id = $1`, plannedPaymentID,
	).Scan(&m.PlannedPaymentID, &m.OwnerID, &m.Name, &m.Amount, &m.DueDate)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("planned payment with ID %d not found", plannedPaymentID), "failed to find planned payment")
	}
	p := mapping.ToDomainPlannedPayment(m)
	return &p, nil
}
