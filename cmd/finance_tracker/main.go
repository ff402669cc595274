package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/alecthomas/kong"
)

var (
	// Version is set via ldflags when building.
	Version = ""

	// CommitSHA is set via ldflags when building.
	CommitSHA = ""

	cli struct {
		Version kong.VersionFlag `help:"Show version information"`
		Commands
	}
)

// @title Finance Tracker API
// @version 1.0
// @description Transaction ledger and query service for personal finance accounts.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	ctx := kong.Parse(&cli,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("finance_tracker"),
		kong.Description("Transaction ledger and query service."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	err = ctx.Run(cfg, logger)
	ctx.FatalIfErrorf(err)
}

// newLogger logs JSON in production and text otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
