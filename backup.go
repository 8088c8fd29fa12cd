// backup.go
//
// Snapshot export/import of the whole key-value store, mirroring the
// original app's backup-file feature (walk all keys, serialize to JSON).
package motivation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Export walks every key in the store into a Backup snapshot. When a cipher
// is configured, each value is stored encrypted.
func (m *Manager) Export(ctx context.Context) (*Backup, error) {
	keys, err := m.config.store.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for export: %w", err)
	}

	backup := &Backup{
		Version:   BackupVersion,
		CreatedAt: time.Now(),
		Entries:   make(map[string]string, len(keys)),
	}

	for _, key := range keys {
		value, err := m.config.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s for export: %w", key, err)
		}

		entry := string(value)
		if m.config.cipher != nil {
			entry, err = m.config.cipher.Encrypt(entry)
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt %s: %w", key, err)
			}
		}
		backup.Entries[key] = entry
	}

	m.config.logger.Info("Exported backup", "entries", len(backup.Entries))
	return backup, nil
}

// Import restores a snapshot with replace semantics: every key present in
// the store but absent from the snapshot is deleted, then every snapshot
// entry is written. Snapshots from unknown format versions are rejected.
func (m *Manager) Import(ctx context.Context, backup *Backup) error {
	if backup == nil {
		return ErrInvalidInput
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("%w: %d", ErrBackupVersion, backup.Version)
	}

	existing, err := m.config.store.Keys(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list keys for import: %w", err)
	}
	for _, key := range existing {
		if _, ok := backup.Entries[key]; !ok {
			if err := m.config.store.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to remove %s during import: %w", key, err)
			}
		}
	}

	for key, entry := range backup.Entries {
		if m.config.cipher != nil {
			entry, err = m.config.cipher.Decrypt(entry)
			if err != nil {
				return fmt.Errorf("failed to decrypt %s: %w", key, err)
			}
		}
		if !json.Valid([]byte(entry)) {
			return fmt.Errorf("%w: entry %s is not valid JSON", ErrInvalidInput, key)
		}
		if err := m.config.store.Set(ctx, key, []byte(entry)); err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}

	m.flushCaches(ctx, existing, backup)

	m.config.logger.Info("Imported backup", "entries", len(backup.Entries))
	return nil
}

// flushCaches drops cached profiles and pools for every user touched by an
// import so reads immediately reflect the restored data.
func (m *Manager) flushCaches(ctx context.Context, existing []string, backup *Backup) {
	if m.config.cache == nil {
		return
	}

	keys := make([]string, 0, len(existing)+len(backup.Entries))
	keys = append(keys, existing...)
	for key := range backup.Entries {
		keys = append(keys, key)
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, profileKeyPrefix) {
			continue
		}
		userID := strings.TrimPrefix(key, profileKeyPrefix)
		m.cacheDelete(ctx, profileKey(userID))
		m.cacheDelete(ctx, poolCacheKey(userID))
	}
}
