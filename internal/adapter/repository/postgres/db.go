package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=moneymash sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate creates the schema if it does not exist yet. The engine is the only
// writer, so a simple idempotent bootstrap is enough.
func (db *DB) Migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			account_type TEXT NOT NULL,
			provider TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS observations (
			seq BIGSERIAL PRIMARY KEY,
			id UUID NOT NULL UNIQUE,
			account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			amount NUMERIC(20, 4) NOT NULL,
			observed_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_observations_account ON observations(account_id, observed_at, seq);
		CREATE INDEX IF NOT EXISTS idx_observations_observed_at ON observations(observed_at, seq);

		CREATE TABLE IF NOT EXISTS snapshots (
			id UUID PRIMARY KEY,
			day DATE NOT NULL UNIQUE,
			net_worth NUMERIC(20, 4) NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
