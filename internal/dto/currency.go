package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
}

// ConvertCurrencyParams binds the query string of the conversion preview.
type ConvertCurrencyParams struct {
	From   string          `form:"from" binding:"required,iso4217"`
	To     string          `form:"to" binding:"required,iso4217"`
	Amount string `form:"amount" binding:"required"`
}

// ConvertCurrencyResponse defines the result of a conversion preview.
type ConvertCurrencyResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID: curr.CurrencyID,
		Code:       curr.Code,
		Name:       curr.Name,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(curr)
	}
	return res
}
