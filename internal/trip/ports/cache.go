package ports

import (
	"context"
	"time"
)

// ResultCache stores serialized trip results. Get returns
// sentinel.ErrCacheMiss when the key is absent or expired.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
