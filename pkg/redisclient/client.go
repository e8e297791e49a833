package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"blog-service/pkg/config"
)

// ErrDisabled 表示配置中关闭了 Redis。
var ErrDisabled = errors.New("redis disabled")

// Client 包装 go-redis 客户端。
type Client struct {
	raw *redis.Client
}

// New 创建客户端并执行一次 PING。
func New(cfg config.RedisConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	raw := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, err
	}
	return &Client{raw: raw}, nil
}

// Raw 返回底层客户端。
func (c *Client) Raw() *redis.Client {
	return c.raw
}

// Close 关闭连接池。
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
