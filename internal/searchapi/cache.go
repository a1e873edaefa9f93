package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pdfsearch/internal/domain"
)

// Cache stores rendered responses by query and page
type Cache interface {
	Get(ctx context.Context, query string, page int) (*domain.SearchResponse, error)
	Set(ctx context.Context, query string, page int, resp *domain.SearchResponse) error
}

// CacheKey is the redis key for a page of a query
func CacheKey(query string, page int) string {
	return fmt.Sprintf("search:%d:%s", page, query)
}

// RedisCache keeps responses in redis with a fixed ttl
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr and checks the connection
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns nil, nil on a miss
func (c *RedisCache) Get(ctx context.Context, query string, page int) (*domain.SearchResponse, error) {
	data, err := c.client.Get(ctx, CacheKey(query, page)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RedisCache) Set(ctx context.Context, query string, page int, resp *domain.SearchResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKey(query, page), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
