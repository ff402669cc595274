package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	StoreBackend  string
	RunMigrations bool

	// Exchange rates
	ExchangeAPIURL     string
	ExchangeAPIKey     string
	ExchangeTimeout    time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
	RedisURL           string
	RateCacheTTL       time.Duration

	// Ledger events
	AMQPURL      string
	AMQPExchange string

	// Edge
	PosthogAPIKey      string
	PosthogEndpoint    string
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("STORE_BACKEND", BackendPostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("EXCHANGE_API_URL", "")
	v.SetDefault("EXCHANGE_API_KEY", "")
	v.SetDefault("EXCHANGE_TIMEOUT", "5s")
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("BREAKER_OPEN_TIMEOUT", "30s")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_CACHE_TTL", "1h")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "ledger")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	// Environment variables override the defaults above.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		StoreBackend:       strings.ToLower(v.GetString("STORE_BACKEND")),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		ExchangeAPIURL:     strings.TrimRight(v.GetString("EXCHANGE_API_URL"), "/"),
		ExchangeAPIKey:     v.GetString("EXCHANGE_API_KEY"),
		BreakerMaxFailures: v.GetUint32("BREAKER_MAX_FAILURES"),
		RedisURL:           v.GetString("REDIS_URL"),
		AMQPURL:            v.GetString("AMQP_URL"),
		AMQPExchange:       v.GetString("AMQP_EXCHANGE"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	cfg.ExchangeTimeout = parseDuration(v, "EXCHANGE_TIMEOUT", 5*time.Second)
	cfg.BreakerOpenTimeout = parseDuration(v, "BREAKER_OPEN_TIMEOUT", 30*time.Second)
	cfg.RateCacheTTL = parseDuration(v, "RATE_CACHE_TTL", time.Hour)

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.ExchangeAPIURL == "" {
		log.Println("Warning: EXCHANGE_API_URL not set. Only stored exchange rates will be used.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORE_BACKEND=%s", BackendPostgres)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s or %s)", c.StoreBackend, BackendPostgres, BackendMemory)
	}
	if c.BreakerMaxFailures == 0 {
		return fmt.Errorf("BREAKER_MAX_FAILURES must be positive")
	}
	if c.IsProduction && c.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
