// Package kv provides a PostgreSQL-based implementation of the Store interface.
package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/malcomkamau/motivation"
)

// sqlOpenFunc is a package-level variable that can be overridden for testing.
var sqlOpenFunc = sql.Open

const (
	pgCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT NOT NULL PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	pgUpsertSQL = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = $2, updated_at = $3
	`

	pgSelectSQL = `
		SELECT value
		FROM kv_entries
		WHERE key = $1
	`

	pgSelectKeysSQL = `
		SELECT key
		FROM kv_entries
		WHERE key LIKE $1 ESCAPE '\'
		ORDER BY key
	`

	pgDeleteSQL = `
		DELETE FROM kv_entries
		WHERE key = $1
	`
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore initializes a new PostgresStore instance.
// It connects using the provided connection string and runs migrations.
func NewPostgresStore(connString string) (*PostgresStore, error) {
	db, err := sqlOpenFunc("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs the necessary database migrations.
func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(pgCreateTableSQL)
	return err
}

// Get retrieves the value at key.
// It returns motivation.ErrNotFound if the key does not exist.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, pgSelectSQL, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, motivation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to get entry: %w", err)
	}
	return value, nil
}

// Set stores value at key, overwriting any previous value.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, pgUpsertSQL, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("postgres: failed to set entry: %w", err)
	}
	return nil
}

// Delete removes the value at key.
// It returns motivation.ErrNotFound if the key does not exist.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, pgDeleteSQL, key)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return motivation.ErrNotFound
	}
	return nil
}

// Keys returns every key with the given prefix in sorted order.
func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, pgSelectKeysSQL, likePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query keys: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: error iterating rows: %w", err)
	}
	return keys, nil
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
