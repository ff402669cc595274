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
)

const transactionColumns = `
	t.transaction_id, t.account_id, t.category_id, t.currency_id, t.amount,
	t.original_amount, t.original_currency_id, t.date, t.description, t.planned_payment_id,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

// PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade using pgxpool.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	return r.findOne(ctx, "", transactionID)
}

// FindTransactionByIDForUpdate retrieves a transaction and locks its row.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	return r.findOne(ctx, " FOR UPDATE", transactionID)
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, suffix string, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1` + suffix
	rows, err := r.db(ctx).Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find transaction", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanTransaction)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("transaction with ID %d not found", transactionID), "failed to find transaction")
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// ListTransactionsByOwner lists a page of transactions across every account of ownerID.
func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Transaction, int, error) {
	return r.listPage(ctx,
		`FROM transactions t JOIN accounts a ON a.account_id = t.account_id WHERE a.owner_id = $1`,
		limit, offset, ownerID)
}

// ListTransactionsByAccount lists a page of transactions of one account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, int, error) {
	return r.listPage(ctx, `FROM transactions t WHERE t.account_id = $1`, limit, offset, accountID)
}

// ListTransactionsFiltered lists a page of transactions matching filter. Both dates are inclusive.
func (r *PgxTransactionRepository) ListTransactionsFiltered(ctx context.Context, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	from := `FROM transactions t WHERE t.account_id = $1 AND t.date BETWEEN $2 AND $3`
	args := []any{filter.AccountID, filter.StartDate, filter.EndDate}
	if filter.CategoryID != nil {
		from += ` AND t.category_id = $4`
		args = append(args, *filter.CategoryID)
	}
	return r.listPage(ctx, from, limit, offset, args...)
}

// ListTransactionsByAccountAndDateRange returns every transaction of the account within [start, end], oldest first.
func (r *PgxTransactionRepository) ListTransactionsByAccountAndDateRange(ctx context.Context, accountID int64, start, end time.Time) ([]domain.Transaction, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		WHERE t.account_id = $1 AND t.date BETWEEN $2 AND $3
		ORDER BY t.date ASC, t.transaction_id ASC`,
		accountID, start, end,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	ms, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// listPage runs a count and a page query sharing the same FROM/WHERE clause.
func (r *PgxTransactionRepository) listPage(ctx context.Context, from string, limit, offset int, args ...any) ([]domain.Transaction, int, error) {
	var total int
	if err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) `+from, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions", err)
	}
	if total == 0 {
		return []domain.Transaction{}, 0, nil
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s %s ORDER BY t.date DESC, t.transaction_id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, from, n+1, n+2)
	rows, err := r.db(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	ms, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to scan transactions", err)
	}
	return mapping.ToDomainTransactionSlice(ms), total, nil
}

// SaveTransaction inserts the transaction and sets its ID.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	m := mapping.ToModelTransaction(*transaction)
	err := r.db(ctx).QueryRow(ctx, `
		INSERT INTO transactions (
			account_id, category_id, currency_id, amount, original_amount, original_currency_id,
			date, description, planned_payment_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING transaction_id`,
		m.AccountID, m.CategoryID, m.CurrencyID, m.Amount, m.OriginalAmount, m.OriginalCurrencyID,
		m.Date, m.Description, m.PlannedPaymentID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&transaction.TransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

// UpdateTransaction overwrites the mutable fields of a transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	cmdTag, err := r.db(ctx).Exec(ctx, `
		UPDATE transactions
		SET category_id = $1, currency_id = $2, amount = $3, original_amount = $4,
			original_currency_id = $5, date = $6, description = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $10`,
		m.CategoryID, m.CurrencyID, m.Amount, m.OriginalAmount,
		m.OriginalCurrencyID, m.Date, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy, m.TransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %d not found", transaction.TransactionID))
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %d not found", transactionID))
	}
	return nil
}

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.AccountID, &m.CategoryID, &m.CurrencyID, &m.Amount,
		&m.OriginalAmount, &m.OriginalCurrencyID, &m.Date, &m.Description, &m.PlannedPaymentID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
