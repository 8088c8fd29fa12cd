// Package motivation provides a concurrent-safe quote-reminder engine.
//
// It manages a library of motivational quotes, per-user profiles with
// preferred categories, favorites, and daily reminder schedules that deliver
// a randomly picked quote at user-chosen times. Persistence goes through a
// flat key-value store with pluggable backends (SQLite, PostgreSQL,
// in-memory) and optional caching (Redis, in-memory). While written as the
// backend for a mobile quote app, it can be used in any application that
// needs scheduled quote delivery.
package motivation
