package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

const (
	usdID       int64 = 1
	eurID       int64 = 2
	gbpID       int64 = 3
	foodID      int64 = 1
	transportID int64 = 2
	salaryID    int64 = 5
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func march(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// fakeConverter converts with fixed rates keyed by "FROM:TO".
type fakeConverter struct {
	rates map[string]decimal.Decimal
}

func (f fakeConverter) Convert(_ context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, ok := f.rates[from+":"+to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s to %s: %w", from, to, apperrors.ErrUpstream)
	}
	return amount.Mul(rate).Round(2), nil
}

// --- Mock LedgerEventPublisher ---
type MockLedgerEventPublisher struct {
	mock.Mock
}

func (m *MockLedgerEventPublisher) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	publisher *MockLedgerEventPublisher
	service   portssvc.LedgerSvc

	owner    domain.User
	stranger domain.User
	account  domain.Account
	budget   domain.Budget
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewSeeded()
	suite.publisher = new(MockLedgerEventPublisher)
	suite.publisher.On("PublishLedgerEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	converter := fakeConverter{rates: map[string]decimal.Decimal{
		"USD:EUR": dec("0.5"),
		"EUR:USD": dec("2"),
	}}
	suite.service = services.NewLedgerService(
		memory.NewRepositoryProvider(suite.store),
		converter,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithEventPublisher(suite.publisher),
	)

	suite.owner = suite.store.AddUser(domain.User{Name: "Owner"})
	suite.stranger = suite.store.AddUser(domain.User{Name: "Stranger"})
	suite.account = suite.store.AddAccount(domain.Account{
		OwnerID:    suite.owner.UserID,
		CurrencyID: usdID,
		Name:       "Checking",
		Balance:    dec("100.00"),
	})
	suite.budget = suite.store.AddBudget(domain.Budget{
		OwnerID:    suite.owner.UserID,
		CategoryID: foodID,
		CurrencyID: usdID,
		Name:       "Groceries",
		Balance:    dec("200.00"),
		StartDate:  march(1),
		EndDate:    march(31),
	})
}

func (suite *LedgerServiceTestSuite) createReq(categoryID int64, amount string, date time.Time) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AccountID:   suite.account.AccountID,
		CategoryID:  categoryID,
		CurrencyID:  usdID,
		Amount:      dec(amount),
		Date:        date,
		Description: "test",
	}
}

func (suite *LedgerServiceTestSuite) balance(accountID int64) decimal.Decimal {
	account, err := suite.store.FindAccountByID(suite.ctx, accountID)
	suite.Require().NoError(err)
	return account.Balance
}

func (suite *LedgerServiceTestSuite) budgetBalance(budgetID int64) decimal.Decimal {
	budget, err := suite.store.FindBudgetByID(suite.ctx, budgetID)
	suite.Require().NoError(err)
	return budget.Balance
}

func (suite *LedgerServiceTestSuite) assertDecimal(expected string, actual decimal.Decimal) {
	suite.Truef(dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateThenDeleteExpense_RestoresBalances() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("30.00", view.Amount)
	suite.Equal("Food", view.Category.Name)
	suite.Equal("USD", view.Currency.Code)
	suite.NotZero(view.TransactionID)
	suite.assertDecimal("70.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("170.00", suite.budgetBalance(suite.budget.BudgetID))

	deleted, err := suite.service.DeleteTransaction(suite.ctx, view.TransactionID, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Equal(view.TransactionID, deleted.TransactionID)
	suite.assertDecimal("100.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("200.00", suite.budgetBalance(suite.budget.BudgetID))
	suite.Equal(0, suite.store.CountTransactions(suite.ctx))
}

func (suite *LedgerServiceTestSuite) TestCreateExpense_PublishesEvent() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "10.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	suite.publisher.AssertCalled(suite.T(), "PublishLedgerEvent", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.Type == domain.TransactionCreated && e.TransactionID == view.TransactionID && e.CurrencyCode == "USD"
	}))
}

func (suite *LedgerServiceTestSuite) TestCreate_PublishFailureDoesNotFail() {
	publisher := new(MockLedgerEventPublisher)
	publisher.On("PublishLedgerEvent", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	service := services.NewLedgerService(
		memory.NewRepositoryProvider(suite.store),
		fakeConverter{},
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithEventPublisher(publisher),
	)

	_, err := service.CreateTransaction(suite.ctx, suite.createReq(foodID, "10.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("90.00", suite.balance(suite.account.AccountID))
	publisher.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreate_PublishesAfterClientCancels() {
	publisher := new(MockLedgerEventPublisher)
	publisher.On("PublishLedgerEvent", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil).Once()
	service := services.NewLedgerService(
		memory.NewRepositoryProvider(suite.store),
		fakeConverter{},
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithEventPublisher(publisher),
	)
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := service.CreateTransaction(ctx, suite.createReq(foodID, "10.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	publisher.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateThenDeleteIncome_SubtractsOnDelete() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(salaryID, "50.00", march(10)), suite.owner.UserID)
	suite.Require().NoError(err)
	suite.assertDecimal("150.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("200.00", suite.budgetBalance(suite.budget.BudgetID))

	_, err = suite.service.DeleteTransaction(suite.ctx, view.TransactionID, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("100.00", suite.balance(suite.account.AccountID))
}

func (suite *LedgerServiceTestSuite) TestCreateExpense_InsufficientFunds() {
	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "100.01", march(10)), suite.owner.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.assertDecimal("100.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("200.00", suite.budgetBalance(suite.budget.BudgetID))
	suite.Equal(0, suite.store.CountTransactions(suite.ctx))
	suite.publisher.AssertNotCalled(suite.T(), "PublishLedgerEvent", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateExpense_ExactBalanceIsAllowed() {
	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "100.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("0", suite.balance(suite.account.AccountID))
}

func (suite *LedgerServiceTestSuite) TestCreateExpense_SufficiencyUsesConvertedAmount() {
	eurAccount := suite.store.AddAccount(domain.Account{OwnerID: suite.owner.UserID, CurrencyID: eurID, Balance: dec("100.00")})
	req := suite.createReq(transportID, "150.00", march(10))
	req.AccountID = eurAccount.AccountID

	view, err := suite.service.CreateTransaction(suite.ctx, req, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("75.00", view.Amount)
	suite.Equal(eurID, view.CurrencyID)
	suite.Equal("EUR", view.Currency.Code)
	suite.assertDecimal("150.00", view.OriginalAmount)
	suite.Equal(usdID, view.OriginalCurrencyID)
	suite.True(view.IsMultiCurrency())
	suite.assertDecimal("25.00", suite.balance(eurAccount.AccountID))
}

func (suite *LedgerServiceTestSuite) TestCreateExpense_BudgetInOtherCurrency() {
	eurBudget := suite.store.AddBudget(domain.Budget{
		OwnerID:    suite.owner.UserID,
		CategoryID: foodID,
		CurrencyID: eurID,
		Balance:    dec("100.00"),
		StartDate:  march(1),
		EndDate:    march(31),
	})

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("170.00", suite.budgetBalance(suite.budget.BudgetID))
	suite.assertDecimal("85.00", suite.budgetBalance(eurBudget.BudgetID))
}

func (suite *LedgerServiceTestSuite) TestCreate_ConversionFailureRollsBack() {
	suite.store.AddBudget(domain.Budget{
		OwnerID:    suite.owner.UserID,
		CategoryID: foodID,
		CurrencyID: gbpID,
		Balance:    dec("100.00"),
		StartDate:  march(1),
		EndDate:    march(31),
	})

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.assertDecimal("100.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("200.00", suite.budgetBalance(suite.budget.BudgetID))
	suite.Equal(0, suite.store.CountTransactions(suite.ctx))
}

func (suite *LedgerServiceTestSuite) TestCreate_OtherUsersAccount() {
	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "10.00", march(10)), suite.stranger.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.assertDecimal("100.00", suite.balance(suite.account.AccountID))
	suite.Equal(0, suite.store.CountTransactions(suite.ctx))
}

func (suite *LedgerServiceTestSuite) TestCreate_NotFound() {
	cases := map[string]func(*dto.CreateTransactionRequest) int64{
		"unknown user":     func(*dto.CreateTransactionRequest) int64 { return 999 },
		"unknown account":  func(r *dto.CreateTransactionRequest) int64 { r.AccountID = 999; return suite.owner.UserID },
		"unknown category": func(r *dto.CreateTransactionRequest) int64 { r.CategoryID = 999; return suite.owner.UserID },
		"unknown currency": func(r *dto.CreateTransactionRequest) int64 { r.CurrencyID = 999; return suite.owner.UserID },
		"unknown planned payment": func(r *dto.CreateTransactionRequest) int64 {
			id := int64(999)
			r.PlannedPaymentID = &id
			return suite.owner.UserID
		},
	}
	for name, mutate := range cases {
		suite.Run(name, func() {
			req := suite.createReq(foodID, "10.00", march(10))
			userID := mutate(&req)

			_, err := suite.service.CreateTransaction(suite.ctx, req, userID)

			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrNotFound)
			suite.assertDecimal("100.00", suite.balance(suite.account.AccountID))
		})
	}
}

func (suite *LedgerServiceTestSuite) TestCreate_WithPlannedPayment() {
	planned := suite.store.AddPlannedPayment(domain.PlannedPayment{OwnerID: suite.owner.UserID, Name: "Rent", Amount: dec("20.00")})
	req := suite.createReq(foodID, "20.00", march(10))
	req.PlannedPaymentID = &planned.PlannedPaymentID

	view, err := suite.service.CreateTransaction(suite.ctx, req, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(view.PlannedPayment)
	suite.Equal("Rent", view.PlannedPayment.Name)
}

func (suite *LedgerServiceTestSuite) TestCreateExpense_BudgetWindowIsStrict() {
	for _, date := range []time.Time{march(1), march(31), time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)} {
		_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "1.00", date), suite.owner.UserID)
		suite.Require().NoError(err)
		suite.assertDecimal("200.00", suite.budgetBalance(suite.budget.BudgetID))
	}

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "1.00", march(1).Add(time.Second)), suite.owner.UserID)
	suite.Require().NoError(err)
	suite.assertDecimal("199.00", suite.budgetBalance(suite.budget.BudgetID))
}

func (suite *LedgerServiceTestSuite) TestCreate_OtherUsersBudgetUntouched() {
	strangerBudget := suite.store.AddBudget(domain.Budget{
		OwnerID:    suite.stranger.UserID,
		CategoryID: foodID,
		CurrencyID: usdID,
		Balance:    dec("50.00"),
		StartDate:  march(1),
		EndDate:    march(31),
	})

	_, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "10.00", march(10)), suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("50.00", suite.budgetBalance(strangerBudget.BudgetID))
}

func (suite *LedgerServiceTestSuite) TestEdit_NetEqualsDeletePlusCreate() {
	transportBudget := suite.store.AddBudget(domain.Budget{
		OwnerID:    suite.owner.UserID,
		CategoryID: transportID,
		CurrencyID: usdID,
		Balance:    dec("80.00"),
		StartDate:  march(1),
		EndDate:    march(31),
	})
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)
	suite.Require().NoError(err)

	edited, err := suite.service.EditTransaction(suite.ctx, view.TransactionID, dto.EditTransactionRequest{
		CategoryID:  transportID,
		CurrencyID:  usdID,
		Amount:      dec("45.00"),
		Date:        march(12),
		Description: "bus pass",
	}, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Equal(view.TransactionID, edited.TransactionID)
	suite.Equal("Transport", edited.Category.Name)
	suite.Equal("bus pass", edited.Description)
	suite.Equal(march(12), edited.Date)
	suite.assertDecimal("45.00", edited.Amount)
	suite.Equal(fixedNow, edited.LastUpdatedAt)
	suite.assertDecimal("55.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("200.00", suite.budgetBalance(suite.budget.BudgetID))
	suite.assertDecimal("35.00", suite.budgetBalance(transportBudget.BudgetID))
	suite.Equal(1, suite.store.CountTransactions(suite.ctx))
}

func (suite *LedgerServiceTestSuite) TestEdit_SameBudgetNetsOut() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)
	suite.Require().NoError(err)

	_, err = suite.service.EditTransaction(suite.ctx, view.TransactionID, dto.EditTransactionRequest{
		CategoryID: foodID,
		CurrencyID: usdID,
		Amount:     dec("40.00"),
		Date:       march(11),
	}, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.assertDecimal("60.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("160.00", suite.budgetBalance(suite.budget.BudgetID))
}

func (suite *LedgerServiceTestSuite) TestEdit_SufficiencyAfterReversal() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "80.00", march(10)), suite.owner.UserID)
	suite.Require().NoError(err)

	// 20 left; reversing the 80 makes 100 available again.
	_, err = suite.service.EditTransaction(suite.ctx, view.TransactionID, dto.EditTransactionRequest{
		CategoryID: foodID, CurrencyID: usdID, Amount: dec("100.00"), Date: march(10),
	}, suite.owner.UserID)
	suite.Require().NoError(err)
	suite.assertDecimal("0", suite.balance(suite.account.AccountID))

	_, err = suite.service.EditTransaction(suite.ctx, view.TransactionID, dto.EditTransactionRequest{
		CategoryID: foodID, CurrencyID: usdID, Amount: dec("100.01"), Date: march(10),
	}, suite.owner.UserID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.assertDecimal("0", suite.balance(suite.account.AccountID))
	suite.assertDecimal("100.00", suite.budgetBalance(suite.budget.BudgetID))
}

func (suite *LedgerServiceTestSuite) TestEdit_OtherUser() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)
	suite.Require().NoError(err)

	_, err = suite.service.EditTransaction(suite.ctx, view.TransactionID, dto.EditTransactionRequest{
		CategoryID: foodID, CurrencyID: usdID, Amount: dec("1.00"), Date: march(10),
	}, suite.stranger.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.assertDecimal("70.00", suite.balance(suite.account.AccountID))
}

func (suite *LedgerServiceTestSuite) TestEdit_NotFound() {
	_, err := suite.service.EditTransaction(suite.ctx, 999, dto.EditTransactionRequest{
		CategoryID: foodID, CurrencyID: usdID, Amount: dec("1.00"), Date: march(10),
	}, suite.owner.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestDelete_OtherUser() {
	view, err := suite.service.CreateTransaction(suite.ctx, suite.createReq(foodID, "30.00", march(10)), suite.owner.UserID)
	suite.Require().NoError(err)

	_, err = suite.service.DeleteTransaction(suite.ctx, view.TransactionID, suite.stranger.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.assertDecimal("70.00", suite.balance(suite.account.AccountID))
	suite.assertDecimal("170.00", suite.budgetBalance(suite.budget.BudgetID))
	suite.Equal(1, suite.store.CountTransactions(suite.ctx))
}

func (suite *LedgerServiceTestSuite) TestDelete_NotFound() {
	_, err := suite.service.DeleteTransaction(suite.ctx, 999, suite.owner.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
