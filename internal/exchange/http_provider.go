package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// HTTPRateProvider queries a remote rates API of the form
// GET {base}/latest?base=FROM&symbols=TO answering {"rates":{"TO":1.23}}.
type HTTPRateProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPRateProvider creates a provider that gives each request timeout.
func NewHTTPRateProvider(baseURL, apiKey string, timeout time.Duration) *HTTPRateProvider {
	return &HTTPRateProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type latestRatesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (p *HTTPRateProvider) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("base", from)
	q.Set("symbols", to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/latest?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rates API %s to %s: %v: %w", from, to, err, apperrors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rates API %s to %s returned %d: %w", from, to, resp.StatusCode, apperrors.ErrUpstream)
	}

	var body latestRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode rates response: %v: %w", err, apperrors.ErrUpstream)
	}
	rate, ok := body.Rates[to]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rates API has no rate for %s to %s: %w", from, to, apperrors.ErrUpstream)
	}
	return rate, nil
}
