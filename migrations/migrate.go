// Package migrations applies the embedded schema migrations for the selected
// database backend via goose. PostgreSQL and SQLite carry separate migration
// sets because their DDL dialects differ (identity columns, timestamp types,
// partial indexes).
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/sixpath/sixpath-server/internal/config"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate runs all pending migrations for the given backend type
// (config.DBTypePostgres or config.DBTypeSQLite).
func Migrate(db *sql.DB, dbType string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	var dialect, dir string
	switch dbType {
	case config.DBTypePostgres:
		dialect, dir = "pgx", "postgres"
	case config.DBTypeSQLite:
		dialect, dir = "sqlite3", "sqlite"
	default:
		return fmt.Errorf("migration error: unsupported db type %q", dbType)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
