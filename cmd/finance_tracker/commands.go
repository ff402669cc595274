package main

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/pkg/database"
)

// Commands lists the subcommands of the binary.
type Commands struct {
	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API (default)."`
	Migrate MigrateCmd `cmd:"" help:"Apply or roll back the database schema."`
}

// MigrateCmd moves the Postgres schema up to the latest version or down one step.
type MigrateCmd struct {
	Direction string `arg:"" optional:"" enum:"up,down" default:"up" help:"up applies every pending migration, down rolls back one."`
}

func (cmd *MigrateCmd) Run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.DatabaseURL == "" {
		return errors.New("PGSQL_URL is required to run migrations")
	}
	return database.RunMigrations(cfg.DatabaseURL, database.MigrationDirection(cmd.Direction), logger)
}
