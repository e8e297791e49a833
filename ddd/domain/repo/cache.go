package repo

import (
	"context"
	"time"
)

// ViewDedupCache is a fast-path marker for recently counted views.
type ViewDedupCache interface {
	// Claim marks (articleID, fingerprint) as seen for ttl. It returns false
	// when the pair was already marked.
	Claim(ctx context.Context, articleID uint64, fingerprint string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, articleID uint64, fingerprint string) error
}

// BlobCache stores opaque payloads with a TTL. ok is false on a miss.
type BlobCache interface {
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
