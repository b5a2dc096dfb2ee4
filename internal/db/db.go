// Package db provides PostgreSQL storage for persisted wizard state.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS wizard_state (
	storage_key TEXT PRIMARY KEY,
	blob        JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the wizard_state table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create wizard_state table: %w", err)
	}
	return nil
}

// LoadBlob returns the blob stored under key, or nil when nothing is stored
func (db *DB) LoadBlob(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := db.pool.QueryRow(ctx,
		`SELECT blob FROM wizard_state WHERE storage_key = $1`,
		key,
	).Scan(&blob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load state %s: %w", key, err)
	}
	return blob, nil
}

// SaveBlob upserts the blob stored under key
func (db *DB) SaveBlob(ctx context.Context, key string, blob []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO wizard_state (storage_key, blob)
		 VALUES ($1, $2)
		 ON CONFLICT (storage_key) DO UPDATE SET blob = $2, updated_at = NOW()`,
		key, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// DeleteBlob removes the blob stored under key
func (db *DB) DeleteBlob(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM wizard_state WHERE storage_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}
