package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the registry and audit tables. The registry rows
// themselves are loaded out of band; the engine only reads them.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026062601)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS statute_sections (
	act_code TEXT NOT NULL,
	section_number TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	section_text TEXT NOT NULL DEFAULT '',
	era TEXT NOT NULL,
	is_offence BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (act_code, section_number)
);

CREATE TABLE IF NOT EXISTS precedents (
	case_citation TEXT PRIMARY KEY,
	case_name TEXT NOT NULL DEFAULT '',
	court TEXT NOT NULL DEFAULT '',
	decided_on TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_events (
	id TEXT PRIMARY KEY,
	request_id TEXT NOT NULL,
	query_type TEXT NOT NULL,
	candidate_id TEXT NOT NULL,
	source_type TEXT NOT NULL,
	act_code TEXT,
	section_number TEXT,
	case_citation TEXT,
	existence TEXT NOT NULL,
	relevance TEXT,
	retained BOOLEAN NOT NULL,
	is_primary BOOLEAN NOT NULL,
	checked_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_events_checked_at ON audit_events(checked_at);
CREATE INDEX IF NOT EXISTS idx_audit_events_request_id ON audit_events(request_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
