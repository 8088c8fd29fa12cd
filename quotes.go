// quotes.go
package motivation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

func quoteKey(id string) string {
	return quoteKeyPrefix + id
}

func poolCacheKey(userID string) string {
	return "pool:" + userID
}

// AddQuote stores a quote in the library. A missing ID is filled in with a
// fresh uuid; the category is normalized to lowercase.
func (m *Manager) AddQuote(ctx context.Context, quote *Quote) error {
	if err := validateQuote(quote); err != nil {
		return err
	}

	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	quote.Category = NormalizeCategory(quote.Category)
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now()
	}

	if err := m.setJSON(ctx, quoteKey(quote.ID), quote); err != nil {
		return fmt.Errorf("failed to add quote: %w", err)
	}
	return nil
}

// Quote retrieves a single quote by ID.
func (m *Manager) Quote(ctx context.Context, id string) (*Quote, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}

	var quote Quote
	if err := m.getJSON(ctx, quoteKey(id), &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// DeleteQuote removes a quote from the library. Favorites referencing the
// quote are left in place; they surface as dangling entries the favorites
// listing skips.
func (m *Manager) DeleteQuote(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return m.config.store.Delete(ctx, quoteKey(id))
}

// Quotes returns the whole library ordered by creation time, oldest first.
func (m *Manager) Quotes(ctx context.Context) ([]Quote, error) {
	keys, err := m.config.store.Keys(ctx, quoteKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	quotes := make([]Quote, 0, len(keys))
	for _, key := range keys {
		var quote Quote
		if err := m.getJSON(ctx, key, &quote); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue // deleted concurrently
			}
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].CreatedAt.Equal(quotes[j].CreatedAt) {
			return quotes[i].ID < quotes[j].ID
		}
		return quotes[i].CreatedAt.Before(quotes[j].CreatedAt)
	})
	return quotes, nil
}

// QuotesByCategory returns all quotes whose category matches (comparison is
// case-insensitive).
func (m *Manager) QuotesByCategory(ctx context.Context, category string) ([]Quote, error) {
	category = NormalizeCategory(category)
	if category == "" {
		return nil, fmt.Errorf("%w: empty category", ErrInvalidCategory)
	}

	quotes, err := m.Quotes(ctx)
	if err != nil {
		return nil, err
	}

	filtered := quotes[:0]
	for _, q := range quotes {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

// ReplaceAll clears the library and installs the given quotes. Used when
// seeding from an external quote source.
func (m *Manager) ReplaceAll(ctx context.Context, quotes []Quote) error {
	keys, err := m.config.store.Keys(ctx, quoteKeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list quotes: %w", err)
	}
	for _, key := range keys {
		if err := m.config.store.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("failed to clear quote %s: %w", key, err)
		}
	}

	for i := range quotes {
		if err := m.AddQuote(ctx, &quotes[i]); err != nil {
			return err
		}
	}
	return nil
}

// Pool computes the user's preference-filtered quote pool: every quote whose
// category is in the user's preferred set, or the whole library when the set
// is empty. Results are cached briefly per user.
func (m *Manager) Pool(ctx context.Context, userID string) ([]Quote, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	var cached []Quote
	if m.cacheGet(ctx, poolCacheKey(userID), &cached) {
		return cached, nil
	}

	profile, err := m.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	quotes, err := m.Quotes(ctx)
	if err != nil {
		return nil, err
	}

	pool := filterByCategories(quotes, profile.Categories)
	m.cacheSet(ctx, poolCacheKey(userID), pool, poolCacheTTL)
	return pool, nil
}

// RandomQuote picks a uniformly random quote from the user's pool.
func (m *Manager) RandomQuote(ctx context.Context, userID string) (*Quote, error) {
	pool, err := m.Pool(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pickRandom(pool)
}

// RandomQuoteFrom picks a uniformly random quote matching any of the given
// categories, bypassing user preferences. An empty category list means the
// whole library.
func (m *Manager) RandomQuoteFrom(ctx context.Context, categories ...string) (*Quote, error) {
	quotes, err := m.Quotes(ctx)
	if err != nil {
		return nil, err
	}
	return pickRandom(filterByCategories(quotes, categories))
}

func filterByCategories(quotes []Quote, categories []string) []Quote {
	categories = NormalizeCategories(categories)
	if len(categories) == 0 {
		return quotes
	}

	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	pool := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if allowed[strings.ToLower(q.Category)] {
			pool = append(pool, q)
		}
	}
	return pool
}

func pickRandom(pool []Quote) (*Quote, error) {
	if len(pool) == 0 {
		return nil, ErrNoQuotes
	}
	quote := pool[rand.IntN(len(pool))]
	return &quote, nil
}
