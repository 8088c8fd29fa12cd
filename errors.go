// errors.go
package motivation

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input parameters")
	ErrInvalidQuote       = errors.New("invalid quote")
	ErrInvalidTime        = errors.New("invalid time of day")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrNotFound           = errors.New("entry not found")
	ErrNoQuotes           = errors.New("no quotes in pool")
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	ErrCacheUnavailable   = errors.New("cache backend unavailable")
	ErrBackupVersion      = errors.New("unsupported backup version")
)
