package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var (
		c  domain.Category
		ok bool
	)
	s.do(ctx, func() { c, ok = s.categories[categoryID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category %d not found", categoryID))
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.filterCategories(ctx, func(domain.Category) bool { return true }), nil
}

func (s *Store) FindCategoriesByName(ctx context.Context, name string) ([]domain.Category, error) {
	needle := strings.ToLower(name)
	return s.filterCategories(ctx, func(c domain.Category) bool {
		return strings.Contains(strings.ToLower(c.Name), needle)
	}), nil
}

func (s *Store) filterCategories(ctx context.Context, keep func(domain.Category) bool) []domain.Category {
	categories := []domain.Category{}
	s.do(ctx, func() {
		for _, c := range s.categories {
			if keep(c) {
				categories = append(categories, c)
			}
		}
	})
	sort.Slice(categories, func(i, j int) bool { return categories[i].CategoryID < categories[j].CategoryID })
	return categories
}

func (s *Store) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	var (
		c  domain.Currency
		ok bool
	)
	s.do(ctx, func() { c, ok = s.currencies[currencyID] })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency %d not found", currencyID))
	}
	return &c, nil
}

func (s *Store) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	code = strings.ToUpper(code)
	var found *domain.Currency
	s.do(ctx, func() {
		for _, c := range s.currencies {
			if c.Code == code {
				c := c
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency %s not found", code))
	}
	return found, nil
}

func (s *Store) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies := []domain.Currency{}
	s.do(ctx, func() {
		for _, c := range s.currencies {
			currencies = append(currencies, c)
		}
	})
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })
	return currencies, nil
}

// FindExchangeRate returns the most recent stored rate for the pair, falling
// back to the inverse of the most recent rate stored the other way round.
func (s *Store) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)

	var direct, inverse *domain.ExchangeRate
	s.do(ctx, func() {
		direct = s.latestRate(from, to)
		inverse = s.latestRate(to, from)
	})
	if direct != nil {
		return direct, nil
	}
	if inverse != nil && !inverse.Rate.IsZero() {
		inverse.FromCurrencyCode = from
		inverse.ToCurrencyCode = to
		inverse.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
		return inverse, nil
	}
	return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + from + " to " + to)
}

func (s *Store) latestRate(from, to string) *domain.ExchangeRate {
	var latest *domain.ExchangeRate
	for _, r := range s.rates {
		if r.FromCurrencyCode != from || r.ToCurrencyCode != to {
			continue
		}
		if latest == nil || r.DateEffective.After(latest.DateEffective) {
			r := r
			latest = &r
		}
	}
	return latest
}
