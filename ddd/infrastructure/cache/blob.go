package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	drepo "blog-service/ddd/domain/repo"
)

const blobPrefix = "blog:cache:"

type redisBlobCache struct {
	cli *redis.Client
}

// NewRedisBlobCache returns a redis-backed BlobCache, or nil when cli is nil.
func NewRedisBlobCache(cli *redis.Client) drepo.BlobCache {
	if cli == nil {
		return nil
	}
	return &redisBlobCache{cli: cli}
}

func (c *redisBlobCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.cli.Get(ctx, blobPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *redisBlobCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.cli.Set(ctx, blobPrefix+key, payload, ttl).Err()
}

func (c *redisBlobCache) Delete(ctx context.Context, key string) error {
	return c.cli.Del(ctx, blobPrefix+key).Err()
}
