// favorites.go
package motivation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

func favoritesKey(userID string) string {
	return favoritesKeyPrefix + userID
}

// ToggleFavorite flips the favorite state of a quote for a user. It returns
// the new state: true when the quote is now a favorite. Toggling an unknown
// quote fails with ErrNotFound.
func (m *Manager) ToggleFavorite(ctx context.Context, userID, quoteID string) (bool, error) {
	if userID == "" || quoteID == "" {
		return false, ErrInvalidInput
	}

	if _, err := m.Quote(ctx, quoteID); err != nil {
		return false, err
	}

	favorites, err := m.loadFavorites(ctx, userID)
	if err != nil {
		return false, err
	}

	for i, f := range favorites {
		if f.QuoteID == quoteID {
			favorites = append(favorites[:i], favorites[i+1:]...)
			return false, m.setJSON(ctx, favoritesKey(userID), favorites)
		}
	}

	favorites = append(favorites, Favorite{QuoteID: quoteID, AddedAt: time.Now()})
	return true, m.setJSON(ctx, favoritesKey(userID), favorites)
}

// IsFavorite reports whether the user has favorited the quote.
func (m *Manager) IsFavorite(ctx context.Context, userID, quoteID string) (bool, error) {
	if userID == "" || quoteID == "" {
		return false, ErrInvalidInput
	}

	favorites, err := m.loadFavorites(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, f := range favorites {
		if f.QuoteID == quoteID {
			return true, nil
		}
	}
	return false, nil
}

// Favorites returns the user's favorite quotes in the order they were
// favorited. Favorites whose quote has since been deleted are skipped.
func (m *Manager) Favorites(ctx context.Context, userID string) ([]Quote, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	favorites, err := m.loadFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	quotes := make([]Quote, 0, len(favorites))
	for _, f := range favorites {
		quote, err := m.Quote(ctx, f.QuoteID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	return quotes, nil
}

func (m *Manager) loadFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	var favorites []Favorite
	if err := m.getJSON(ctx, favoritesKey(userID), &favorites); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return favorites, nil
}
