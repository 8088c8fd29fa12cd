package kv

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/malcomkamau/motivation"
)

// MemoryStore implements the Store interface using an in-memory map.
// This is useful for testing or simple applications where persistence is
// not required.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

// Get retrieves the value at key.
// It returns motivation.ErrNotFound if the key does not exist.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, motivation.ErrNotFound
	}

	// Return a copy to prevent modification of the stored value through
	// the returned slice.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value at key, overwriting any previous value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}

// Delete removes the value at key.
// It returns motivation.ErrNotFound if the key does not exist.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return motivation.ErrNotFound
	}
	delete(s.entries, key)
	return nil
}

// Keys returns every key with the given prefix in sorted order. An empty
// prefix matches all keys.
func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close clears the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]byte)
	return nil
}
