package providers

import "context"

// CacheProvider abstracts the cache that fronts store reads. Values are
// opaque bytes; callers own serialization. A miss is reported as a nil
// value with no error.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL in seconds. A TTL of zero means no
	// expiration.
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
