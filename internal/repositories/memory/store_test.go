package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestWithinTxRestoresStateOnError(t *testing.T) {
	s := memory.NewSeeded()
	account := s.AddAccount(domain.Account{OwnerID: 1, CurrencyID: 1, Balance: decimal.NewFromInt(100)})
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.UpdateAccountBalance(ctx, account.AccountID, decimal.NewFromInt(5), 1, day(1)))
		require.NoError(t, s.SaveTransaction(ctx, &domain.Transaction{AccountID: account.AccountID}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	got, err := s.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 0, s.CountTransactions(ctx))
}

func TestWithinTxJoinsOuterUnitOfWork(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	calls := 0

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		return s.WithinTx(ctx, func(ctx context.Context) error {
			calls++
			_, err := s.ListCurrencies(ctx)
			return err
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFindOverlappingBudgetsIsStrict(t *testing.T) {
	s := memory.NewSeeded()
	ctx := context.Background()
	b2 := s.AddBudget(domain.Budget{BudgetID: 20, OwnerID: 1, CategoryID: 1, StartDate: day(1), EndDate: day(31)})
	b1 := s.AddBudget(domain.Budget{BudgetID: 10, OwnerID: 1, CategoryID: 1, StartDate: day(1), EndDate: day(31)})
	s.AddBudget(domain.Budget{OwnerID: 2, CategoryID: 1, StartDate: day(1), EndDate: day(31)})
	s.AddBudget(domain.Budget{OwnerID: 1, CategoryID: 2, StartDate: day(1), EndDate: day(31)})

	got, err := s.FindOverlappingBudgetsForUpdate(ctx, 1, 1, day(15))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b1.BudgetID, got[0].BudgetID)
	assert.Equal(t, b2.BudgetID, got[1].BudgetID)

	for _, edge := range []time.Time{day(1), day(31)} {
		got, err := s.FindOverlappingBudgetsForUpdate(ctx, 1, 1, edge)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestListTransactionsFilteredIsInclusive(t *testing.T) {
	s := memory.NewSeeded()
	ctx := context.Background()
	food := int64(1)
	s.AddTransaction(domain.Transaction{AccountID: 7, CategoryID: 1, Date: day(5)})
	s.AddTransaction(domain.Transaction{AccountID: 7, CategoryID: 2, Date: day(5)})
	s.AddTransaction(domain.Transaction{AccountID: 7, CategoryID: 1, Date: day(6)})
	s.AddTransaction(domain.Transaction{AccountID: 8, CategoryID: 1, Date: day(5)})

	items, total, err := s.ListTransactionsFiltered(ctx, portsrepo.TransactionFilter{
		AccountID: 7, CategoryID: &food, StartDate: day(5), EndDate: day(5),
	}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, day(5), items[0].Date)

	items, total, err = s.ListTransactionsFiltered(ctx, portsrepo.TransactionFilter{
		AccountID: 7, StartDate: day(1), EndDate: day(31),
	}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, day(6), items[0].Date, "newest first")
}

func TestListTransactionsByOwnerPages(t *testing.T) {
	s := memory.NewSeeded()
	ctx := context.Background()
	mine := s.AddAccount(domain.Account{OwnerID: 1, CurrencyID: 1})
	theirs := s.AddAccount(domain.Account{OwnerID: 2, CurrencyID: 1})
	for i := 1; i <= 3; i++ {
		s.AddTransaction(domain.Transaction{AccountID: mine.AccountID, CategoryID: 1, Date: day(i)})
	}
	s.AddTransaction(domain.Transaction{AccountID: theirs.AccountID, CategoryID: 1, Date: day(1)})

	items, total, err := s.ListTransactionsByOwner(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, day(1), items[0].Date)

	items, _, err = s.ListTransactionsByOwner(ctx, 1, 2, 4)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, _, err = s.ListTransactionsByOwner(ctx, 1, 2, -16)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFindExchangeRateFallsBackToInverse(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	s.AddExchangeRate(domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.5"), DateEffective: day(1)})
	s.AddExchangeRate(domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.8"), DateEffective: day(2)})

	direct, err := s.FindExchangeRate(ctx, "usd", "eur")
	require.NoError(t, err)
	assert.True(t, direct.Rate.Equal(decimal.RequireFromString("0.8")))

	inverse, err := s.FindExchangeRate(ctx, "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "EUR", inverse.FromCurrencyCode)
	assert.True(t, inverse.Rate.Equal(decimal.RequireFromString("1.25")))

	_, err = s.FindExchangeRate(ctx, "GBP", "USD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindCategoriesByNameIgnoresCase(t *testing.T) {
	s := memory.NewSeeded()

	got, err := s.FindCategoriesByName(context.Background(), "OO")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Name)
}
