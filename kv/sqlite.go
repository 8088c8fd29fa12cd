// Package kv provides a SQLite-based implementation of the Store interface.
package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/malcomkamau/motivation"
)

const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT NOT NULL PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	sqliteUpsertSQL = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key)
		DO UPDATE SET value = ?, updated_at = ?
	`

	sqliteSelectSQL = `
		SELECT value
		FROM kv_entries
		WHERE key = ?
	`

	sqliteSelectKeysSQL = `
		SELECT key
		FROM kv_entries
		WHERE key LIKE ? ESCAPE '\'
		ORDER BY key
	`

	sqliteDeleteSQL = `
		DELETE FROM kv_entries
		WHERE key = ?
	`
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore initializes a new SQLiteStore instance.
// It connects to the SQLite database at the specified path and runs
// migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs the necessary database migrations.
func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteCreateTableSQL)
	return err
}

// Get retrieves the value at key.
// It returns motivation.ErrNotFound if the key does not exist.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, sqliteSelectSQL, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, motivation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return value, nil
}

// Set stores value at key, overwriting any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx, sqliteUpsertSQL, key, value, now, value, now)
	if err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

// Delete removes the value at key.
// It returns motivation.ErrNotFound if the key does not exist.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, sqliteDeleteSQL, key)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return motivation.ErrNotFound
	}
	return nil
}

// Keys returns every key with the given prefix in sorted order.
func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectKeysSQL, likePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return keys, nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// likePattern escapes LIKE metacharacters in prefix and appends a wildcard.
func likePattern(prefix string) string {
	escaped := make([]byte, 0, len(prefix)+2)
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case '%', '_', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, prefix[i])
	}
	return string(escaped) + "%"
}
