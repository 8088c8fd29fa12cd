// manager.go
package motivation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Storage key layout. Every persisted object lives under one of these
// prefixes in the flat key-value store.
const (
	quoteKeyPrefix     = "quote:"
	profileKeyPrefix   = "profile:"
	favoritesKeyPrefix = "favorites:"
	remindersKeyPrefix = "reminders:"
)

// Cache TTLs. The filtered quote pool is cached per user with a short TTL
// because library changes cannot cheaply invalidate every user's pool.
const (
	profileCacheTTL = 24 * time.Hour
	poolCacheTTL    = time.Minute
)

// Config holds the internal configuration for a Manager instance.
// It is populated by applying functional Options when a new Manager is
// created with New().
type Config struct {
	store  Store
	cache  Cache
	logger Logger
	cipher Cipher
}

// Option configures a Manager instance. Options are passed to New().
type Option func(*Config)

// WithStore sets the key-value store backing all persistence.
// This is a mandatory option for a functional Manager.
func WithStore(s Store) Option {
	return func(c *Config) {
		c.store = s
	}
}

// WithCache sets an optional caching layer. When present, profiles and
// per-user quote pools are served cache-aside.
func WithCache(cache Cache) Option {
	return func(c *Config) {
		c.cache = cache
	}
}

// WithLogger sets the Logger implementation. Defaults to a JSON slog
// logger on stderr.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithCipher sets the cipher used to encrypt exported backups. Without it,
// Export produces plaintext JSON snapshots.
func WithCipher(ci Cipher) Option {
	return func(c *Config) {
		c.cipher = ci
	}
}

// Manager is the engine's front door: profile, quote, favorite, reminder
// persistence and backup operations, all over the configured Store.
type Manager struct {
	config *Config
}

// New creates a Manager from the given options.
func New(opts ...Option) *Manager {
	cfg := &Config{
		logger: NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager{
		config: cfg,
	}
}

// Logger exposes the configured logger so callers composing the engine
// (scheduler, API server) can share it.
func (m *Manager) Logger() Logger {
	return m.config.logger
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	if m.config.store == nil {
		return nil
	}
	return m.config.store.Close()
}

// getJSON loads and unmarshals the value at key into v.
func (m *Manager) getJSON(ctx context.Context, key string, v interface{}) error {
	data, err := m.config.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// setJSON marshals v and stores it at key.
func (m *Manager) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return m.config.store.Set(ctx, key, data)
}

func (m *Manager) cacheSet(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if m.config.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		m.config.logger.Error("Failed to marshal value for cache", "key", key, "error", err)
		return
	}
	if err := m.config.cache.Set(ctx, key, data, ttl); err != nil {
		m.config.logger.Error("Failed to cache value", "key", key, "error", err)
	}
}

func (m *Manager) cacheGet(ctx context.Context, key string, v interface{}) bool {
	if m.config.cache == nil {
		return false
	}
	data, err := m.config.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	raw, ok := data.([]byte)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (m *Manager) cacheDelete(ctx context.Context, key string) {
	if m.config.cache == nil {
		return
	}
	if err := m.config.cache.Delete(ctx, key); err != nil {
		m.config.logger.Error("Failed to delete cached value", "key", key, "error", err)
	}
}
