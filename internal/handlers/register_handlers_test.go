package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const allowedOrigin = "https://app.example.com"

func newAppRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rateLimiter, err := middleware.NewRateLimiter("100-M", nil)
	require.NoError(t, err)

	cfg := &config.Config{
		IsProduction:       true,
		JWTSecret:          "test-secret-key-that-is-long-enough",
		CORSAllowedOrigins: []string{allowedOrigin},
	}
	services := &portssvc.ServiceContainer{
		Ledger:           new(MockLedgerService),
		TransactionQuery: new(MockTransactionQueryService),
		Currency:         new(MockCurrencyService),
		Category:         new(MockCategoryService),
	}

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, services, rateLimiter, utils.InitializePosthogClient("", "", logger))
	return r
}

func TestRegisterRoutes_AnswersCORSPreflight(t *testing.T) {
	r := newAppRouter(t)

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/transactions", nil)
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRegisterRoutes_PreflightFromUnknownOrigin(t *testing.T) {
	r := newAppRouter(t)

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/transactions", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRegisterRoutes_APIRequiresToken(t *testing.T) {
	r := newAppRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("Origin", allowedOrigin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}
