// Package database provides Postgres connectivity and the complaints
// repository.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/civicsetu/resolver/internal/config"
)

// DefaultPingTimeout bounds the startup connectivity check.
const DefaultPingTimeout = 5 * time.Second

// NewPostgresConnection creates a new PostgreSQL database connection pool.
func NewPostgresConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Schema is the complaints table DDL. Types are kept to the portable
// subset shared by Postgres and SQLite so the test harness can run the
// same statements against an in-memory database.
const Schema = `
CREATE TABLE IF NOT EXISTS complaints (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	department           TEXT NOT NULL,
	department_full_name TEXT NOT NULL DEFAULT '',
	urgency              TEXT NOT NULL,
	confidence           INTEGER NOT NULL DEFAULT 0,
	status               TEXT NOT NULL DEFAULT 'open',
	location             TEXT NOT NULL,
	latitude             REAL NOT NULL,
	longitude            REAL NOT NULL,
	geocoded             BOOLEAN NOT NULL DEFAULT FALSE,
	source_type          TEXT NOT NULL DEFAULT '',
	source_handle        TEXT NOT NULL DEFAULT '',
	source_id            TEXT NOT NULL DEFAULT '',
	source_link          TEXT NOT NULL DEFAULT '',
	citizen_email        TEXT NOT NULL DEFAULT '',
	citizen_phone        TEXT NOT NULL DEFAULT '',
	authority_notified   BOOLEAN NOT NULL DEFAULT FALSE,
	citizen_notified     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at           TIMESTAMP NOT NULL,
	updated_at           TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS complaints_source_id_uniq
	ON complaints (source_id) WHERE source_id <> '';
`

// Migrate applies the schema.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
