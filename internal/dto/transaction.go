package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to book a new transaction.
// Amount is expressed in CurrencyID and converted into the account currency.
type CreateTransactionRequest struct {
	AccountID        int64           `json:"accountID" binding:"required"`
	CategoryID       int64           `json:"categoryID" binding:"required"`
	CurrencyID       int64           `json:"currencyID" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description" binding:"max=255"`
	PlannedPaymentID *int64          `json:"plannedPaymentID,omitempty"`
}

// EditTransactionRequest defines the replacement values for an existing transaction.
type EditTransactionRequest struct {
	CategoryID  int64           `json:"categoryID" binding:"required"`
	CurrencyID  int64           `json:"currencyID" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description" binding:"max=255"`
}

// TransactionFilter holds the parsed criteria of a filtered listing.
type TransactionFilter struct {
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *int64
	AccountID  int64
}

// ListFilteredParams binds the query string of the filter endpoint.
// Dates are accepted as YYYY-MM-DD or RFC 3339.
type ListFilteredParams struct {
	StartDate  string `form:"start-date" binding:"required"`
	EndDate    string `form:"end-date" binding:"required"`
	AccountID  int64  `form:"account-id" binding:"required"`
	CategoryID *int64 `form:"category-id"`
	pagination.Params
}

// StatementParams binds the query string of the statement endpoint.
type StatementParams struct {
	StartDate string `form:"start-date" binding:"required"`
	EndDate   string `form:"end-date" binding:"required"`
}

// CategoryRef is the category as embedded in a transaction response.
type CategoryRef struct {
	CategoryID int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      int64            `json:"id"`
	AccountID          int64            `json:"accountId"`
	Date               time.Time        `json:"date"`
	Amount             decimal.Decimal  `json:"amount"`
	Description        string           `json:"description"`
	Category           CategoryRef      `json:"category"`
	Currency           CurrencyResponse `json:"currency"`
	OriginalAmount     decimal.Decimal  `json:"originalAmount"`
	OriginalCurrencyID int64            `json:"originalCurrencyId"`
	PlannedPaymentID   *int64           `json:"plannedPaymentId,omitempty"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse = pagination.Page[TransactionResponse]

// AccountStatementResponse defines the data returned for an account statement.
type AccountStatementResponse struct {
	AccountID    int64                 `json:"accountId"`
	StartDate    time.Time             `json:"startDate"`
	EndDate      time.Time             `json:"endDate"`
	TotalIncome  decimal.Decimal       `json:"totalIncome"`
	TotalExpense decimal.Decimal       `json:"totalExpense"`
	Net          decimal.Decimal       `json:"net"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.TransactionView to TransactionResponse DTO.
func ToTransactionResponse(view domain.TransactionView) TransactionResponse {
	return TransactionResponse{
		TransactionID: view.TransactionID,
		AccountID:     view.AccountID,
		Date:          view.Date,
		Amount:        view.Amount,
		Description:   view.Description,
		Category: CategoryRef{
			CategoryID: view.Category.CategoryID,
			Name:       view.Category.Name,
			Type:       string(view.Category.Type),
		},
		Currency:           ToCurrencyResponse(view.Currency),
		OriginalAmount:     view.OriginalAmount,
		OriginalCurrencyID: view.OriginalCurrencyID,
		PlannedPaymentID:   view.PlannedPaymentID,
	}
}

// ToTransactionResponses converts a slice of views.
func ToTransactionResponses(views []domain.TransactionView) []TransactionResponse {
	responses := make([]TransactionResponse, len(views))
	for i, v := range views {
		responses[i] = ToTransactionResponse(v)
	}
	return responses
}

// ToListTransactionsResponse converts a page of views.
func ToListTransactionsResponse(page pagination.Page[domain.TransactionView]) ListTransactionsResponse {
	return pagination.Map(page, ToTransactionResponse)
}

// ToAccountStatementResponse converts a domain.AccountStatement.
func ToAccountStatementResponse(s domain.AccountStatement) AccountStatementResponse {
	return AccountStatementResponse{
		AccountID:    s.AccountID,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Net:          s.Net,
		Transactions: ToTransactionResponses(s.Transactions),
	}
}
