// Package store implements the persistence layer: database connection
// management for the PostgreSQL and SQLite backends, and the repositories
// over the users, connections, and referrals tables.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	"github.com/sixpath/sixpath-server/internal/config"
	"github.com/sixpath/sixpath-server/internal/logger"
)

const pingAttempts = 3

// DB wraps the sql.DB connection pool together with the statement builder
// configured for the active backend's placeholder format and the error
// classifier used for transient-failure retries.
type DB struct {
	*sql.DB

	builder    sq.StatementBuilderType
	classifier ErrorClassificator
	logger     *logger.Logger
}

// NewDB opens the backend selected by cfg.Type, configures the connection
// pool, and verifies connectivity with a classified retry loop: transient
// (retryable) ping failures are attempted up to three times before giving up.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	var conn *sql.DB
	var builder sq.StatementBuilderType
	var err error

	switch cfg.Type {
	case config.DBTypePostgres:
		conn, err = sql.Open("pgx", cfg.DSN)
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	case config.DBTypeSQLite:
		// SQLite leaves foreign key enforcement off unless the DSN asks
		// for it; without it the REFERENCES clauses in the schema are inert.
		conn, err = sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", cfg.SQLitePath))
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	default:
		return nil, fmt.Errorf("unsupported db type %q", cfg.Type)
	}
	if err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	db := &DB{
		DB:         conn,
		builder:    builder,
		classifier: NewPostgresErrorClassifier(),
		logger:     log,
	}

	if err := db.pingWithRetry(ctx); err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewDB").Str("type", cfg.Type).Msg("connected to database successfully")

	return db, nil
}

func (db *DB) pingWithRetry(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			return nil
		}

		if db.classifier.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retryable ping failure")
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	return err
}

// postgresError extracts the PostgreSQL error code from err, or returns an
// empty string when err did not originate from the pgx driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// constraintCode classifies a constraint violation regardless of the active
// backend. SQLite extended result codes are normalised to the equivalent
// pgerrcode value so the repositories map errors the same way on both engines.
// Returns an empty string when err is not a recognised constraint violation.
func constraintCode(err error) string {
	if code := postgresError(err); code != "" {
		return code
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return pgerrcode.UniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return pgerrcode.ForeignKeyViolation
		}
	}

	return ""
}
