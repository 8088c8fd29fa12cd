package cache

import (
	"context"
	"time"
)

// Cache defines the methods required for a caching backend. It mirrors
// motivation.Cache so backends can be used without importing the root
// package.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
