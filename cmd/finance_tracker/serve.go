package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/events"
	"github.com/SscSPs/finance_tracker/internal/exchange"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/SscSPs/finance_tracker/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the HTTP API until SIGINT or SIGTERM.
type ServeCmd struct {
	WarmRates bool `help:"Prefetch remote exchange rates for every stored currency on startup." default:"true" negatable:""`
}

func (cmd *ServeCmd) Run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	converter := exchange.NewConverter(exchange.NewProvider(exchange.Options{
		APIURL:             cfg.ExchangeAPIURL,
		APIKey:             cfg.ExchangeAPIKey,
		Timeout:            cfg.ExchangeTimeout,
		BreakerMaxFailures: cfg.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.BreakerOpenTimeout,
		CacheTTL:           cfg.RateCacheTTL,
	}, repos.ExchangeRateRepo, redisClient, logger))

	publisher, closePublisher, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	serviceContainer := services.NewServiceContainer(repos, converter, services.WithEventPublisher(publisher))

	if err := handlers.RegisterValidators(); err != nil {
		return err
	}
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return err
	}
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cmd.WarmRates && cfg.ExchangeAPIURL != "" {
		g.Go(func() error {
			warmRates(gctx, repos.CurrencyRepo, converter, logger)
			return nil
		})
	}
	return g.Wait()
}

// openStore builds the repositories for the configured backend and returns a
// function releasing whatever they hold.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		store := memory.NewSeeded()
		store.SeedDemo(time.Now().UTC())
		logger.Warn("Using the in-memory store, data is lost on exit")
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, database.MigrateUp, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}

func openPublisher(cfg *config.Config, logger *slog.Logger) (portssvc.LedgerEventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, ledger events are not published")
		return events.NoopPublisher{}, func() {}, nil
	}
	publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect ledger event publisher: %w", err)
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close ledger event publisher", slog.String("error", err.Error()))
		}
	}, nil
}

// warmRates prefetches remote rates from every currency to every other one.
func warmRates(ctx context.Context, currencies portsrepo.CurrencyReader, converter *exchange.Converter, logger *slog.Logger) {
	list, err := currencies.ListCurrencies(ctx)
	if err != nil {
		logger.Warn("Failed to list currencies for rate warm-up", slog.String("error", err.Error()))
		return
	}
	codes := make([]string, len(list))
	for i, c := range list {
		codes[i] = c.Code
	}
	for _, base := range codes {
		if err := converter.Warm(ctx, base, codes); err != nil {
			logger.Warn("Exchange rate warm-up incomplete", slog.String("base", base), slog.String("error", err.Error()))
		}
	}
}
