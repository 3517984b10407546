package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationCommands lists the goose commands accepted by RunMigrationCommand.
var MigrationCommands = map[string]struct{}{
	"up":      {},
	"down":    {},
	"status":  {},
	"version": {},
	"redo":    {},
}

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	return RunMigrationCommand(ctx, database, "up")
}

// RunMigrationCommand runs a goose command against the embedded migrations.
func RunMigrationCommand(ctx context.Context, database *sql.DB, command string) error {
	if _, ok := MigrationCommands[command]; !ok {
		return fmt.Errorf("unknown migration command %q", command)
	}
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.RunContext(ctx, command, database, "migrations")
}
