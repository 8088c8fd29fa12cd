// reminders.go
//
// Persistence for scheduled reminders. The live triggers are managed by the
// reminder package; this layer keeps the authoritative reminder list per
// user so triggers can be listed, edited and restored across restarts.
package motivation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

func remindersKey(userID string) string {
	return remindersKeyPrefix + userID
}

// Reminders returns the user's persisted reminder list. An unknown user
// yields an empty list, not an error.
func (m *Manager) Reminders(ctx context.Context, userID string) ([]Reminder, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	var reminders []Reminder
	if err := m.getJSON(ctx, remindersKey(userID), &reminders); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	return reminders, nil
}

// SaveReminders replaces the user's persisted reminder list. An empty list
// removes the entry entirely.
func (m *Manager) SaveReminders(ctx context.Context, userID string, reminders []Reminder) error {
	if userID == "" {
		return ErrInvalidInput
	}

	if len(reminders) == 0 {
		if err := m.config.store.Delete(ctx, remindersKey(userID)); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("failed to clear reminders: %w", err)
		}
		return nil
	}
	return m.setJSON(ctx, remindersKey(userID), reminders)
}

// AllReminders returns every user's persisted reminder list, keyed by user.
// The scheduler uses this to restore live triggers on startup.
func (m *Manager) AllReminders(ctx context.Context) (map[string][]Reminder, error) {
	keys, err := m.config.store.Keys(ctx, remindersKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	all := make(map[string][]Reminder, len(keys))
	for _, key := range keys {
		userID := strings.TrimPrefix(key, remindersKeyPrefix)
		reminders, err := m.Reminders(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(reminders) > 0 {
			all[userID] = reminders
		}
	}
	return all, nil
}
