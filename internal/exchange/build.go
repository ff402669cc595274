package exchange

import (
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// Options selects the providers NewProvider chains together.
type Options struct {
	APIURL             string
	APIKey             string
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
	CacheTTL           time.Duration
}

// NewProvider chains persisted rates with the remote API when one is
// configured. The remote provider sits behind the breaker, and behind the
// redis cache when client is not nil.
func NewProvider(opts Options, rates portsrepo.ExchangeRateReader, client *redis.Client, logger *slog.Logger) RateProvider {
	chain := ChainProvider{NewStoredRateProvider(rates)}
	if opts.APIURL == "" {
		logger.Info("No exchange rates API configured, using stored rates only")
		return chain
	}

	var remote RateProvider = NewBreakerRateProvider(
		NewHTTPRateProvider(opts.APIURL, opts.APIKey, opts.Timeout),
		opts.BreakerMaxFailures,
		opts.BreakerOpenTimeout,
		logger,
	)
	if client != nil {
		remote = NewCachedRateProvider(client, remote, opts.CacheTTL)
	}
	return append(chain, remote)
}
