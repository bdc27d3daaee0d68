package ports

import (
	"context"
	"time"
)

// Cache is a TTL key-value store used to avoid redundant remote lookups
// (blog lists, shop info). A miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
