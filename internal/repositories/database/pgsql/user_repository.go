package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository implements portsrepo.UserReader using pgxpool.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	var m models.User
	err := r.db(ctx).QueryRow(ctx,
		`SELECT user_id, name, email FROM users WHERE user_id = $1`, userID,
	).Scan(&m.UserID, &m.Name, &m.Email)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("user with ID %d not found", userID), "failed to find user")
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}
