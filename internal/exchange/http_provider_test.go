package exchange_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRateProvider_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "EUR", r.URL.Query().Get("symbols"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9123}}`))
	}))
	defer srv.Close()

	rate, err := exchange.NewHTTPRateProvider(srv.URL+"/", "secret", time.Second).Rate(context.Background(), "USD", "EUR")

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.9123")))
}

func TestHTTPRateProvider_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"missing symbol": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"rates":{}}`))
		},
		"malformed body": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"slow": func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"rates":{"EUR":1}}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := exchange.NewHTTPRateProvider(srv.URL, "", 50*time.Millisecond).Rate(context.Background(), "USD", "EUR")

			assert.ErrorIs(t, err, apperrors.ErrUpstream)
		})
	}
}
