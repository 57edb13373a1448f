// Package cache keeps search responses in Redis, keyed by index generation
// so a reload never serves results of an older build.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gcbaptista/recipe-search/internal/logger"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/services"
)

const keyPrefix = "recipe-search:"

// ErrMiss is returned by a Store when the key does not exist.
var ErrMiss = errors.New("cache miss")

// Store is the key/value backend of the cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// QueryCache caches SearchResults. Backend failures are logged and treated
// as misses, so searching keeps working when Redis is down.
type QueryCache struct {
	store   Store
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New creates a QueryCache over store. prom may be nil.
func New(store Store, ttl time.Duration, prom *metrics.Metrics) *QueryCache {
	return &QueryCache{
		store:   store,
		ttl:     ttl,
		metrics: prom,
		logger:  logger.WithComponent("query-cache"),
	}
}

// Get returns the cached result for query at the given index generation.
func (c *QueryCache) Get(ctx context.Context, generation uint64, query services.SearchQuery) (services.SearchResult, bool) {
	key := BuildKey(generation, query)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.recordMiss()
		return services.SearchResult{}, false
	}

	var result services.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.recordMiss()
		return services.SearchResult{}, false
	}
	c.hits.Add(1)
	c.metrics.ObserveCache(true)
	c.logger.Debug("cache hit", "query", query.QueryString, "key", key)
	return result, true
}

// Set stores result for query at the given index generation.
func (c *QueryCache) Set(ctx context.Context, generation uint64, query services.SearchQuery, result services.SearchResult) {
	key := BuildKey(generation, query)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result or computes, stores and returns it.
// Concurrent misses for the same key compute once.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	generation uint64,
	query services.SearchQuery,
	computeFn func() services.SearchResult,
) (services.SearchResult, bool) {
	if result, ok := c.Get(ctx, generation, query); ok {
		return result, true
	}

	key := BuildKey(generation, query)
	val, _, _ := c.group.Do(key, func() (interface{}, error) {
		result := computeFn()
		// A reload may have swapped the index since generation was read.
		c.Set(ctx, result.Generation, query, result)
		return result, nil
	})
	return val.(services.SearchResult), false
}

// Invalidate deletes every cached result.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.store.DeletePrefix(ctx, keyPrefix)
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns hit and miss counts since creation.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) recordMiss() {
	c.misses.Add(1)
	c.metrics.ObserveCache(false)
}

// BuildKey derives the cache key. Queries that tokenize identically share a
// key; token order is kept because it determines the order of matched terms.
func BuildKey(generation uint64, query services.SearchQuery) string {
	normalized := strings.Join(tokenizer.Tokenize(query.QueryString), " ")
	raw := fmt.Sprintf("q=%s|category=%s|time=%s", normalized, query.Filters.Category, query.Filters.Time)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%sg%d:%x", keyPrefix, generation, hash[:16])
}
