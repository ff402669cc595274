package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ConvertAmount(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) FilterCategories(ctx context.Context, name string) ([]domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

type ReferenceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCurrency *MockCurrencyService
	mockCategory *MockCategoryService
	authHeader   string
}

func (suite *ReferenceHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *ReferenceHandlerTestSuite) SetupTest() {
	secret := "test-secret-key-that-is-long-enough"
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(secret))
	suite.mockCurrency = new(MockCurrencyService)
	suite.mockCategory = new(MockCategoryService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCurrencyRoutes(v1, suite.mockCurrency)
	handlers.RegisterCategoryRoutes(v1, suite.mockCategory)
	suite.authHeader = "Bearer " + generateTestToken(&suite.Suite, secret, 7)
}

func (suite *ReferenceHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", suite.authHeader)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReferenceHandlerTestSuite) TestListCurrencies() {
	suite.mockCurrency.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyID: 2, Code: "EUR", Name: "Euro"},
		{CurrencyID: 1, Code: "USD", Name: "US Dollar"},
	}, nil).Once()

	w := suite.get("/api/v1/currencies")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("EUR", resp[0].Code)
}

func (suite *ReferenceHandlerTestSuite) TestConvertAmount() {
	suite.mockCurrency.On("ConvertAmount", mock.Anything, "usd", "EUR",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("10")) }),
	).Return(decimal.RequireFromString("9.20"), nil).Once()

	w := suite.get("/api/v1/currencies/convert?from=usd&to=EUR&amount=10")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertCurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.From)
	suite.True(resp.Converted.Equal(decimal.RequireFromString("9.20")))
}

func (suite *ReferenceHandlerTestSuite) TestConvertAmount_BadRequest() {
	for _, url := range []string{
		"/api/v1/currencies/convert?from=QQQ&to=EUR&amount=10",
		"/api/v1/currencies/convert?from=USD&to=EURO&amount=10",
		"/api/v1/currencies/convert?from=USD&to=EUR&amount=ten",
		"/api/v1/currencies/convert?from=USD&to=EUR",
	} {
		suite.Equal(http.StatusBadRequest, suite.get(url).Code, url)
	}
	suite.mockCurrency.AssertNotCalled(suite.T(), "ConvertAmount")
}

func (suite *ReferenceHandlerTestSuite) TestConvertAmount_Upstream() {
	suite.mockCurrency.On("ConvertAmount", mock.Anything, "USD", "JPY", mock.Anything).
		Return(decimal.Zero, apperrors.ErrUpstream).Once()

	suite.Equal(http.StatusBadGateway, suite.get("/api/v1/currencies/convert?from=USD&to=JPY&amount=1").Code)
}

func (suite *ReferenceHandlerTestSuite) TestCategories() {
	food := domain.Category{CategoryID: 1, Name: "Food", Type: domain.Expense}
	suite.mockCategory.On("ListCategories", mock.Anything).Return([]domain.Category{food}, nil).Once()
	suite.mockCategory.On("FilterCategories", mock.Anything, "fo").Return([]domain.Category{food}, nil).Once()
	suite.mockCategory.On("FilterCategories", mock.Anything, "zz").Return(nil, apperrors.NewNotFoundError("no category matches zz")).Once()
	suite.mockCategory.On("GetCategoryByID", mock.Anything, int64(1)).Return(&food, nil).Once()

	suite.Equal(http.StatusOK, suite.get("/api/v1/categories").Code)
	suite.Equal(http.StatusOK, suite.get("/api/v1/categories/filter?name=fo").Code)
	suite.Equal(http.StatusNotFound, suite.get("/api/v1/categories/filter?name=zz").Code)

	w := suite.get("/api/v1/categories/1")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CategoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EXPENSE", resp.Type)

	suite.Equal(http.StatusBadRequest, suite.get("/api/v1/categories/0").Code)
	suite.mockCategory.AssertExpectations(suite.T())
}

func TestReferenceHandler(t *testing.T) {
	suite.Run(t, new(ReferenceHandlerTestSuite))
}
