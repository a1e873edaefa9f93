package backend

import (
	"context"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"pdfsearch/internal/domain"
)

type cacheKey struct {
	query string
	page  int
}

// CachedBackend keeps recent successful responses in memory.
// Failures are never cached so a retry always reaches the endpoint.
type CachedBackend struct {
	next  Backend
	cache *expirable.LRU[cacheKey, *domain.SearchResponse]
}

// NewCachedBackend wraps next with an LRU of the given size and entry TTL
func NewCachedBackend(next Backend, size int, ttl time.Duration) *CachedBackend {
	return &CachedBackend{
		next:  next,
		cache: expirable.NewLRU[cacheKey, *domain.SearchResponse](size, nil, ttl),
	}
}

// Search serves from cache when possible
func (c *CachedBackend) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	key := cacheKey{query: req.Query, page: max(req.Page, 1)}
	if resp, ok := c.cache.Get(key); ok {
		log.Printf("Cache hit for %q page %d (seq %d)", req.Query, key.page, req.Seq)
		return resp, nil
	}

	resp, err := c.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, resp)
	return resp, nil
}

// Purge drops every cached response
func (c *CachedBackend) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached responses
func (c *CachedBackend) Len() int {
	return c.cache.Len()
}
