package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
)

func (s *Store) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	var (
		txn domain.Transaction
		ok  bool
	)
	s.do(ctx, func() { txn, ok = s.transactions[transactionID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
	}
	return &txn, nil
}

func (s *Store) FindTransactionByIDForUpdate(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	return s.FindTransactionByID(ctx, transactionID)
}

func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Transaction, int, error) {
	var matched []domain.Transaction
	s.do(ctx, func() {
		matched = s.selectTransactions(func(t domain.Transaction) bool {
			return s.accounts[t.AccountID].OwnerID == ownerID
		})
	})
	return pageOf(newestFirst(matched), limit, offset), len(matched), nil
}

func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, int, error) {
	var matched []domain.Transaction
	s.do(ctx, func() {
		matched = s.selectTransactions(func(t domain.Transaction) bool { return t.AccountID == accountID })
	})
	return pageOf(newestFirst(matched), limit, offset), len(matched), nil
}

func (s *Store) ListTransactionsFiltered(ctx context.Context, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	var matched []domain.Transaction
	s.do(ctx, func() {
		matched = s.selectTransactions(func(t domain.Transaction) bool {
			if t.AccountID != filter.AccountID || !within(t.Date, filter.StartDate, filter.EndDate) {
				return false
			}
			return filter.CategoryID == nil || t.CategoryID == *filter.CategoryID
		})
	})
	return pageOf(newestFirst(matched), limit, offset), len(matched), nil
}

func (s *Store) ListTransactionsByAccountAndDateRange(ctx context.Context, accountID int64, start, end time.Time) ([]domain.Transaction, error) {
	var matched []domain.Transaction
	s.do(ctx, func() {
		matched = s.selectTransactions(func(t domain.Transaction) bool {
			return t.AccountID == accountID && within(t.Date, start, end)
		})
	})
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].TransactionID < matched[j].TransactionID
		}
		return matched[i].Date.Before(matched[j].Date)
	})
	return matched, nil
}

func (s *Store) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	s.do(ctx, func() {
		transaction.TransactionID = s.newID()
		s.transactions[transaction.TransactionID] = *transaction
	})
	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	var ok bool
	s.do(ctx, func() {
		if _, ok = s.transactions[transaction.TransactionID]; ok {
			s.transactions[transaction.TransactionID] = transaction
		}
	})
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transaction.TransactionID))
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, transactionID int64) error {
	var ok bool
	s.do(ctx, func() {
		if _, ok = s.transactions[transactionID]; ok {
			delete(s.transactions, transactionID)
		}
	})
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
	}
	return nil
}

// CountTransactions reports how many transactions the store holds.
func (s *Store) CountTransactions(ctx context.Context) int {
	var n int
	s.do(ctx, func() { n = len(s.transactions) })
	return n
}

func (s *Store) selectTransactions(keep func(domain.Transaction) bool) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// within is the inclusive BETWEEN of the SQL store.
func within(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

func newestFirst(txns []domain.Transaction) []domain.Transaction {
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].Date.Equal(txns[j].Date) {
			return txns[i].TransactionID > txns[j].TransactionID
		}
		return txns[i].Date.After(txns[j].Date)
	})
	return txns
}

func pageOf(txns []domain.Transaction, limit, offset int) []domain.Transaction {
	if offset < 0 || offset >= len(txns) {
		return []domain.Transaction{}
	}
	end := offset + limit
	if end > len(txns) {
		end = len(txns)
	}
	return txns[offset:end]
}
