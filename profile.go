// profile.go
package motivation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

// GetProfile retrieves a user's profile. A user that has never saved a
// profile gets a zero profile with only UserID set, not an error; the
// original app treats a missing profile as "fresh install".
func (m *Manager) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	var cached Profile
	if m.cacheGet(ctx, profileKey(userID), &cached) {
		return &cached, nil
	}

	var profile Profile
	if err := m.getJSON(ctx, profileKey(userID), &profile); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Profile{UserID: userID}, nil
		}
		return nil, err
	}

	m.cacheSet(ctx, profileKey(userID), &profile, profileCacheTTL)
	return &profile, nil
}

// SaveProfile stores a user's profile, normalizing its category preference
// set and stamping UpdatedAt.
func (m *Manager) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile == nil || profile.UserID == "" {
		return ErrInvalidInput
	}

	profile.Categories = NormalizeCategories(profile.Categories)
	profile.UpdatedAt = time.Now()

	if err := m.setJSON(ctx, profileKey(profile.UserID), profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	m.cacheSet(ctx, profileKey(profile.UserID), profile, profileCacheTTL)
	m.cacheDelete(ctx, poolCacheKey(profile.UserID))
	return nil
}

// DeleteProfile removes a user's profile along with their favorites and
// persisted reminders.
func (m *Manager) DeleteProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidInput
	}

	if err := m.config.store.Delete(ctx, profileKey(userID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if err := m.config.store.Delete(ctx, favoritesKey(userID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete favorites: %w", err)
	}
	if err := m.config.store.Delete(ctx, remindersKey(userID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete reminders: %w", err)
	}

	m.cacheDelete(ctx, profileKey(userID))
	m.cacheDelete(ctx, poolCacheKey(userID))
	return nil
}

// SetCategories replaces the user's preferred category set.
func (m *Manager) SetCategories(ctx context.Context, userID string, categories []string) error {
	profile, err := m.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	profile.Categories = categories
	return m.SaveProfile(ctx, profile)
}

// Categories returns the user's normalized preferred category set.
func (m *Manager) Categories(ctx context.Context, userID string) ([]string, error) {
	profile, err := m.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.Categories, nil
}
