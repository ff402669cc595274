package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
)

// viewBuilder resolves the reference data a TransactionView carries.
type viewBuilder struct {
	categoryRepo portsrepo.CategoryReader
	currencyRepo portsrepo.CurrencyReader
	plannedRepo  portsrepo.PlannedPaymentReader
}

// build converts transactions into views. Lookups are memoized for the
// duration of the call since pages usually share a handful of categories.
func (b viewBuilder) build(ctx context.Context, transactions []domain.Transaction) ([]domain.TransactionView, error) {
	categories := make(map[int64]domain.Category)
	currencies := make(map[int64]domain.Currency)
	planned := make(map[int64]*domain.PlannedPayment)

	views := make([]domain.TransactionView, 0, len(transactions))
	for _, txn := range transactions {
		category, ok := categories[txn.CategoryID]
		if !ok {
			c, err := b.categoryRepo.FindCategoryByID(ctx, txn.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve category %d: %w", txn.CategoryID, err)
			}
			category = *c
			categories[txn.CategoryID] = category
		}

		currency, ok := currencies[txn.CurrencyID]
		if !ok {
			c, err := b.currencyRepo.FindCurrencyByID(ctx, txn.CurrencyID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve currency %d: %w", txn.CurrencyID, err)
			}
			currency = *c
			currencies[txn.CurrencyID] = currency
		}

		view := domain.TransactionView{Transaction: txn, Category: category, Currency: currency}
		if txn.PlannedPaymentID != nil {
			id := *txn.PlannedPaymentID
			p, ok := planned[id]
			if !ok {
				var err error
				p, err = b.plannedRepo.FindPlannedPaymentByID(ctx, id)
				if err != nil {
					return nil, fmt.Errorf("failed to resolve planned payment %d: %w", id, err)
				}
				planned[id] = p
			}
			view.PlannedPayment = p
		}
		views = append(views, view)
	}
	return views, nil
}

func (b viewBuilder) buildOne(ctx context.Context, txn domain.Transaction) (domain.TransactionView, error) {
	views, err := b.build(ctx, []domain.Transaction{txn})
	if err != nil {
		return domain.TransactionView{}, err
	}
	return views[0], nil
}
