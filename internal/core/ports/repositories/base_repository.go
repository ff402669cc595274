package repositories

import (
	"context"
)

// TransactionManager runs work as a single database unit of work.
type TransactionManager interface {
	// WithinTx runs fn inside a transaction carried by the context passed to fn.
	// Repositories called with that context take part in the transaction. The
	// transaction commits when fn returns nil and rolls back otherwise. Calling
	// WithinTx with a context that already carries a transaction joins it.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
