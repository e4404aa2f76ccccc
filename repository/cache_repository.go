package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized calculation results by key.
// A ttl of zero means the entry does not expire.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
