package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureMonitoringSchema creates the versioned schema on startup. Safe to call
// repeatedly; every statement is IF NOT EXISTS.
func EnsureMonitoringSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			user_name TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS credentials (
			id BIGSERIAL PRIMARY KEY,
			owner_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			credential_type TEXT NOT NULL,
			value TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (owner_id, provider, credential_type)
		)`,
		`CREATE TABLE IF NOT EXISTS oauth_states (
			id BIGSERIAL PRIMARY KEY,
			owner_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			nonce TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id BIGSERIAL PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			platform TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			channels TEXT[] NOT NULL DEFAULT '{}',
			keywords TEXT[] NOT NULL DEFAULT '{}',
			item_budget INT NOT NULL DEFAULT 25,
			total_items_pulled BIGINT NOT NULL DEFAULT 0,
			last_executed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS discovered_items (
			id BIGSERIAL PRIMARY KEY,
			campaign_id BIGINT NOT NULL REFERENCES campaigns(id),
			platform_item_id TEXT NOT NULL,
			channel TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT,
			author TEXT,
			score INT NOT NULL DEFAULT 0,
			url TEXT,
			item_created_at TIMESTAMPTZ,
			keyword_matched TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (campaign_id, platform_item_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_oauth_states_lookup ON oauth_states (owner_id, provider, nonce)`,
		`CREATE INDEX IF NOT EXISTS idx_discovered_items_campaign ON discovered_items (campaign_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_campaigns_owner ON campaigns (owner_id)`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	row := db.QueryRowContext(ctx, `SELECT 1 FROM information_schema.columns WHERE table_name=$1 AND column_name=$2`, table, column)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureCredentialSchema adds newer columns if an older deployment created the
// credentials table without them.
func EnsureCredentialSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checks := []struct {
		table  string
		column string
		ddl    string
	}{
		{"credentials", "expires_at", "ALTER TABLE credentials ADD COLUMN expires_at TIMESTAMPTZ"},
		{"credentials", "status", "ALTER TABLE credentials ADD COLUMN status TEXT NOT NULL DEFAULT 'active'"},
		{"campaigns", "item_budget", "ALTER TABLE campaigns ADD COLUMN item_budget INT NOT NULL DEFAULT 25"},
	}

	for _, c := range checks {
		exists, err := columnExists(ctx, db, c.table, c.column)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := db.ExecContext(ctx, c.ddl); err != nil {
				return fmt.Errorf("adding column %s.%s failed: %w", c.table, c.column, err)
			}
		}
	}
	return nil
}
