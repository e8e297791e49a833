package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	drepo "blog-service/ddd/domain/repo"
)

const viewDedupPrefix = "blog:view:"

type redisViewDedup struct {
	cli *redis.Client
}

// NewRedisViewDedup returns a redis-backed ViewDedupCache, or nil when cli is nil.
func NewRedisViewDedup(cli *redis.Client) drepo.ViewDedupCache {
	if cli == nil {
		return nil
	}
	return &redisViewDedup{cli: cli}
}

func viewKey(articleID uint64, fingerprint string) string {
	return fmt.Sprintf("%s%d:%s", viewDedupPrefix, articleID, fingerprint)
}

func (c *redisViewDedup) Claim(ctx context.Context, articleID uint64, fingerprint string, ttl time.Duration) (bool, error) {
	return c.cli.SetNX(ctx, viewKey(articleID, fingerprint), 1, ttl).Result()
}

func (c *redisViewDedup) Release(ctx context.Context, articleID uint64, fingerprint string) error {
	return c.cli.Del(ctx, viewKey(articleID, fingerprint)).Err()
}
