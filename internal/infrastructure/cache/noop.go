package cache

import (
	"context"
	"time"

	"storeseo-core/internal/ports"
)

type noopCache struct{}

// NewNoopCache returns a cache that stores nothing, for deployments without
// Redis. Every read is a miss.
func NewNoopCache() ports.Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
