package memory

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrencies mirrors the currencies seeded by the SQL migrations.
var DefaultCurrencies = []domain.Currency{
	{CurrencyID: 1, Code: "USD", Name: "US Dollar"},
	{CurrencyID: 2, Code: "EUR", Name: "Euro"},
	{CurrencyID: 3, Code: "GBP", Name: "British Pound"},
	{CurrencyID: 4, Code: "JPY", Name: "Japanese Yen"},
	{CurrencyID: 5, Code: "INR", Name: "Indian Rupee"},
}

// DefaultCategories mirrors the categories seeded by the SQL migrations.
var DefaultCategories = []domain.Category{
	{CategoryID: 1, Name: "Food", Type: domain.Expense},
	{CategoryID: 2, Name: "Transport", Type: domain.Expense},
	{CategoryID: 3, Name: "Housing", Type: domain.Expense},
	{CategoryID: 4, Name: "Entertainment", Type: domain.Expense},
	{CategoryID: 5, Name: "Salary", Type: domain.Income},
	{CategoryID: 6, Name: "Gifts", Type: domain.Income},
}

// NewSeeded returns a store holding the default currencies and categories.
func NewSeeded() *Store {
	s := New()
	for _, c := range DefaultCurrencies {
		s.AddCurrency(c)
	}
	for _, c := range DefaultCategories {
		s.AddCategory(c)
	}
	return s
}

// SeedDemo adds a user with one USD account and a monthly food budget so the
// API can be exercised without a database.
func (s *Store) SeedDemo(now time.Time) {
	user := s.AddUser(domain.User{Name: "Demo User", Email: "demo@example.com"})
	s.AddAccount(domain.Account{
		OwnerID:    user.UserID,
		CurrencyID: 1,
		Name:       "Checking",
		Balance:    decimal.NewFromInt(1000),
	})
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	s.AddBudget(domain.Budget{
		OwnerID:    user.UserID,
		CategoryID: 1,
		CurrencyID: 1,
		Name:       "Groceries",
		Balance:    decimal.NewFromInt(400),
		StartDate:  monthStart.AddDate(0, 0, -1),
		EndDate:    monthStart.AddDate(0, 1, 0),
	})
}

func (s *Store) AddUser(u domain.User) domain.User {
	s.do(context.Background(), func() {
		u.UserID = s.assignID(u.UserID)
		s.users[u.UserID] = u
	})
	return u
}

func (s *Store) AddAccount(a domain.Account) domain.Account {
	s.do(context.Background(), func() {
		a.AccountID = s.assignID(a.AccountID)
		s.accounts[a.AccountID] = a
	})
	return a
}

func (s *Store) AddCurrency(c domain.Currency) domain.Currency {
	s.do(context.Background(), func() {
		c.CurrencyID = s.assignID(c.CurrencyID)
		s.currencies[c.CurrencyID] = c
	})
	return c
}

func (s *Store) AddCategory(c domain.Category) domain.Category {
	s.do(context.Background(), func() {
		c.CategoryID = s.assignID(c.CategoryID)
		s.categories[c.CategoryID] = c
	})
	return c
}

func (s *Store) AddBudget(b domain.Budget) domain.Budget {
	s.do(context.Background(), func() {
		b.BudgetID = s.assignID(b.BudgetID)
		s.budgets[b.BudgetID] = b
	})
	return b
}

func (s *Store) AddPlannedPayment(p domain.PlannedPayment) domain.PlannedPayment {
	s.do(context.Background(), func() {
		p.PlannedPaymentID = s.assignID(p.PlannedPaymentID)
		s.planned[p.PlannedPaymentID] = p
	})
	return p
}

func (s *Store) AddExchangeRate(r domain.ExchangeRate) domain.ExchangeRate {
	s.do(context.Background(), func() {
		r.ExchangeRateID = s.assignID(r.ExchangeRateID)
		s.rates[r.ExchangeRateID] = r
	})
	return r
}

// AddTransaction stores t as is, without touching any balance.
func (s *Store) AddTransaction(t domain.Transaction) domain.Transaction {
	s.do(context.Background(), func() {
		t.TransactionID = s.assignID(t.TransactionID)
		s.transactions[t.TransactionID] = t
	})
	return t
}

// assignID keeps explicit ids and moves the shared sequence past them.
func (s *Store) assignID(id int64) int64 {
	if id == 0 {
		return s.newID()
	}
	if id > s.nextID {
		s.nextID = id
	}
	return id
}
