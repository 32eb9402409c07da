// Package cache provides an optional Redis-backed read cache for the product
// list. The admin table re-fetches the full list constantly; a short-lived
// cached copy absorbs that read traffic. Every mutation path invalidates the
// key, so a stale list survives at most one mutation or the TTL, whichever
// comes first.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harsh-gohil-129/inventory-management-app/internal/core"
)

const productListKey = "inventory:products:all"

// ProductCache implements core.ListCache on Redis.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a ProductCache to the Redis instance at addr.
func New(addr string, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies the Redis connection.
func (c *ProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *ProductCache) Close() error {
	return c.client.Close()
}

// GetProducts returns the cached product list, or ok=false on miss or any
// cache trouble. Cache failures are never surfaced to callers; the store is
// always authoritative.
func (c *ProductCache) GetProducts(ctx context.Context) ([]core.Product, bool) {
	val, err := c.client.Get(ctx, productListKey).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("product cache read failed", "error", err)
		}
		return nil, false
	}

	var products []core.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		slog.Warn("product cache entry corrupt, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return products, true
}

// SetProducts stores the list with the configured TTL.
func (c *ProductCache) SetProducts(ctx context.Context, products []core.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productListKey, data, c.ttl).Err(); err != nil {
		slog.Warn("product cache write failed", "error", err)
	}
}

// Invalidate drops the cached list.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		slog.Warn("product cache invalidation failed", "error", err)
	}
}
