package redis

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/chemsolver/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

var (
	ErrCacheMiss           = errors.New(errors.ErrCodeCacheMiss, "cache miss")
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "serialization failed")
)

// Loader computes a result on a cache miss.
type Loader func(ctx context.Context) (*chemistry.SolveResult, error)

// ResultCache stores successful solve results. Failed solves are never
// written.
type ResultCache struct {
	client   *Client
	logger   logging.Logger
	metrics  *metrics.AppMetrics
	prefix   string
	ttl      time.Duration
	compress bool
	group    singleflight.Group
}

type CacheOption func(*ResultCache)

func WithPrefix(prefix string) CacheOption {
	return func(c *ResultCache) { c.prefix = prefix }
}

// WithTTL sets the entry lifetime; zero keeps entries forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *ResultCache) { c.ttl = ttl }
}

func WithCompression(enabled bool) CacheOption {
	return func(c *ResultCache) { c.compress = enabled }
}

func WithMetrics(m *metrics.AppMetrics) CacheOption {
	return func(c *ResultCache) { c.metrics = m }
}

// NewResultCache builds a cache over client.
func NewResultCache(client *Client, log logging.Logger, opts ...CacheOption) *ResultCache {
	c := &ResultCache{
		client:   client,
		logger:   logging.OrNop(log).Named("cache"),
		prefix:   "chemsolver:",
		ttl:      24 * time.Hour,
		compress: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResultKey derives the cache key of a solve from its canonical formula, the
// display language and the requested operations.
func ResultKey(canonical, lang string, ops []string) string {
	sorted := append([]string(nil), ops...)
	sort.Strings(sorted)
	return "solve:" + lang + ":" + strings.Join(sorted, "+") + ":" + canonical
}

func (c *ResultCache) fullKey(key string) string { return c.prefix + key }

// jitterTTL spreads expirations by ±10%.
func (c *ResultCache) jitterTTL() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitter := float64(c.ttl) * 0.1 * (rand.Float64()*2 - 1)
	return c.ttl + time.Duration(jitter)
}

// Get returns the cached result or ErrCacheMiss.
func (c *ResultCache) Get(ctx context.Context, key string) (*chemistry.SolveResult, error) {
	start := time.Now()
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	switch {
	case err == redis.Nil:
		c.metrics.RecordCacheAccess(metrics.CacheMiss, "get", time.Since(start))
		return nil, ErrCacheMiss
	case err != nil:
		c.metrics.RecordCacheAccess(metrics.CacheError, "get", time.Since(start))
		return nil, errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to read from cache")
	}

	var r chemistry.SolveResult
	if err := decode(data, &r); err != nil {
		c.metrics.RecordCacheAccess(metrics.CacheError, "get", time.Since(start))
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "corrupt cache entry").WithDetail(key)
	}
	c.metrics.RecordCacheAccess(metrics.CacheHit, "get", time.Since(start))
	return &r, nil
}

// Set stores r under key.
func (c *ResultCache) Set(ctx context.Context, key string, r *chemistry.SolveResult) error {
	if r == nil {
		return errors.InvalidParam("nil result")
	}
	data, err := encode(r, c.compress)
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	start := time.Now()
	err = c.client.Set(ctx, c.fullKey(key), data, c.jitterTTL()).Err()
	c.metrics.RecordCacheAccess(outcome(err), "set", time.Since(start))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to write to cache")
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return metrics.CacheError
	}
	return metrics.OutcomeSuccess
}

// GetOrLoad returns the cached result for key or runs load, caching its
// result on success. Concurrent misses on one key share a single load. When
// Redis is unreachable the cache is bypassed and load runs directly. A result
// served from Redis has Cached set.
func (c *ResultCache) GetOrLoad(ctx context.Context, key string, load Loader) (*chemistry.SolveResult, error) {
	r, err := c.Get(ctx, key)
	if err == nil {
		r.Cached = true
		return r, nil
	}
	if !errors.IsCode(err, errors.ErrCodeCacheMiss) {
		c.logger.Warn("cache bypassed", logging.String("key", key), logging.Err(err), logging.Code(err))
		return load(ctx)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		res, loadErr := load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, res); setErr != nil {
			c.logger.Warn("failed to store result", logging.String("key", key), logging.Err(setErr))
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*chemistry.SolveResult)
	return &out, nil
}

// Invalidate drops the given keys.
func (c *ResultCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to invalidate cache")
	}
	return nil
}

// Flush removes every solve entry under the cache prefix and returns the
// number of keys deleted.
func (c *ResultCache) Flush(ctx context.Context) (int64, error) {
	var deleted int64
	var cursor uint64
	match := c.fullKey("solve:") + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return deleted, errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to scan cache")
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, errors.Wrap(err, errors.ErrCodeCacheUnavailable, "failed to flush cache")
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Info("cache flushed", logging.Int64("deleted", deleted))
	return deleted, nil
}

// Ping checks the underlying connection.
func (c *ResultCache) Ping(ctx context.Context) error { return c.client.Ping(ctx) }

//Personal.AI order the ending
