package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
	converter    portssvc.CurrencyConverter
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyReader, converter portssvc.CurrencyConverter) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo, converter: converter}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) ConvertAmount(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return amount, nil
	}
	converted, err := s.converter.Convert(ctx, fromCode, toCode, amount)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert amount")
		return decimal.Zero, fmt.Errorf("failed to convert %s from %s to %s: %w", amount, fromCode, toCode, err)
	}
	return converted, nil
}
