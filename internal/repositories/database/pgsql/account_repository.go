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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const selectAccount = `
	SELECT account_id, owner_id, currency_id, name, balance,
		created_at, created_by, last_updated_at, last_updated_by
	FROM accounts
	WHERE account_id = $1`

// PgxAccountRepository implements portsrepo.AccountRepositoryFacade using pgxpool.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return r.findAccount(ctx, selectAccount, accountID)
}

// FindAccountByIDForUpdate retrieves an account and locks the row for the surrounding transaction.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	return r.findAccount(ctx, selectAccount+" FOR UPDATE", accountID)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, query string, accountID int64) (*domain.Account, error) {
	var m models.Account
	err := r.db(ctx).QueryRow(ctx, query, accountID).Scan(
		&m.AccountID, &m.OwnerID, &m.CurrencyID, &m.Name, &m.Balance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("account with ID %d not found", accountID), "failed to find account")
	}
	a := mapping.ToDomainAccount(m)
	return &a, nil
}

// UpdateAccountBalance writes the new balance of an account.
func (r *PgxAccountRepository) UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal, userID int64, now time.Time) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `
		UPDATE accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4`,
		balance, now, userID, accountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account balance", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account with ID %d not found", accountID))
	}
	return nil
}
