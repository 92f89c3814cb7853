// Package redis provides a read-through cache decorating the order store.
// Lookups are idempotent reads, so a short TTL trims database load during
// agent conversations (callers tend to ask about the same order several
// times in a row) without any invalidation machinery.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/raza10006/orderdesk/internal/order"
)

// Cache implements order.Store by serving raw records from Redis and
// falling through to the wrapped store on a miss. Cache failures are never
// surfaced: any Redis error degrades to the underlying store. Not-found
// results are not cached.
type Cache struct {
	client *backend.Client
	next   order.Store
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the record expiry (default 60s).
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix (default "orderdesk:order:").
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithLogger sets the cache logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCache wraps next with a Redis read-through cache.
func NewCache(client *backend.Client, next order.Store, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		next:   next,
		prefix: "orderdesk:order:",
		ttl:    60 * time.Second,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(id any) string {
	return c.prefix + fmt.Sprint(id)
}

// FetchOrder serves a cached raw record when present, otherwise delegates
// and caches the result. Cached values round-trip through JSON, which
// widens source types (time.Time becomes text, integers become float64);
// the normalizer's accessors tolerate both shapes.
func (c *Cache) FetchOrder(ctx context.Context, id any) (order.RawRecord, error) {
	key := c.key(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var rec order.RawRecord
		if jsonErr := json.Unmarshal(data, &rec); jsonErr == nil {
			return rec, nil
		}
		// Unreadable entry: fall through and let the rewrite below fix it.
	} else if err != backend.Nil {
		c.log.Debug("order cache read failed, falling through", "err", err)
	}

	rec, err := c.next.FetchOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(rec); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.log.Debug("order cache write failed", "err", setErr)
		}
	}
	return rec, nil
}
