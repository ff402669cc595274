// Package memory is an in-process Entity Store used for development and tests.
// A unit of work holds the store lock for its whole duration and restores the
// previous state when it fails.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
)

type txKey struct{}

type state struct {
	users        map[int64]domain.User
	accounts     map[int64]domain.Account
	categories   map[int64]domain.Category
	currencies   map[int64]domain.Currency
	budgets      map[int64]domain.Budget
	planned      map[int64]domain.PlannedPayment
	transactions map[int64]domain.Transaction
	rates        map[int64]domain.ExchangeRate
	nextID       int64
}

func (s state) clone() state {
	return state{
		users:        maps.Clone(s.users),
		accounts:     maps.Clone(s.accounts),
		categories:   maps.Clone(s.categories),
		currencies:   maps.Clone(s.currencies),
		budgets:      maps.Clone(s.budgets),
		planned:      maps.Clone(s.planned),
		transactions: maps.Clone(s.transactions),
		rates:        maps.Clone(s.rates),
		nextID:       s.nextID,
	}
}

// Store keeps every entity in maps keyed by id.
type Store struct {
	mu sync.Mutex
	state
}

// New returns an empty store.
func New() *Store {
	return &Store{state: state{
		users:        map[int64]domain.User{},
		accounts:     map[int64]domain.Account{},
		categories:   map[int64]domain.Category{},
		currencies:   map[int64]domain.Currency{},
		budgets:      map[int64]domain.Budget{},
		planned:      map[int64]domain.PlannedPayment{},
		transactions: map[int64]domain.Transaction{},
		rates:        map[int64]domain.ExchangeRate{},
	}}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:          s,
		UserRepo:           s,
		AccountRepo:        s,
		CategoryRepo:       s,
		CurrencyRepo:       s,
		BudgetRepo:         s,
		PlannedPaymentRepo: s,
		TransactionRepo:    s,
		ExchangeRateRepo:   s,
	}
}

// WithinTx implements portsrepo.TransactionManager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// do runs fn under the store lock unless ctx already belongs to a unit of work
// of this store, which holds the lock.
func (s *Store) do(ctx context.Context, fn func()) {
	if s.inTx(ctx) {
		fn()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

var (
	_ portsrepo.TransactionManager          = (*Store)(nil)
	_ portsrepo.UserReader                  = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.CategoryReader              = (*Store)(nil)
	_ portsrepo.CurrencyReader              = (*Store)(nil)
	_ portsrepo.BudgetRepository            = (*Store)(nil)
	_ portsrepo.PlannedPaymentReader        = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.ExchangeRateReader          = (*Store)(nil)
)
