// Package kv provides key-value store backends for the quote-reminder
// engine: in-memory, SQLite and PostgreSQL.
package kv

import "context"

// Store defines the methods required of a key-value backend. It mirrors
// motivation.Store so backends can be used without importing the root
// package.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
