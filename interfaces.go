// Package motivation defines interfaces for storage, caching, logging and
// notification delivery used by the quote-reminder engine.
package motivation

import (
	"context"
	"time"
)

// Store defines the methods required of the flat key-value store that backs
// all persistence. Values are opaque serialized blobs; the engine layers its
// key layout and JSON encoding on top.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Cache defines the methods required for a caching backend.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Notifier delivers a fired reminder to the user. Implementations live in
// the reminder package.
type Notifier interface {
	Notify(ctx context.Context, userID string, quote Quote) error
}

// Cipher encrypts and decrypts backup payloads. The encryption package
// provides an AES-256-GCM implementation.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encrypted string) (string, error)
}
