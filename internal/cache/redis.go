package cache

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the requested key is absent or already expired.
var ErrCacheMiss = errors.New("cache miss")

// scanBatch is the COUNT hint for SCAN and the DEL batch size.
const scanBatch = 100

// Gateway abstracts get/set/delete with TTL against a key-value store.
//
// Contract:
//   - Get returns ErrCacheMiss for absent keys and *errs.CacheUnavailableError
//     when the store cannot be reached.
//   - Set stores payload for ttl; expiry is left to the store.
//   - DeleteNamespace removes every key of the service namespace and returns
//     how many existed. Removing nothing is not an error.
type Gateway interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	DeleteNamespace(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// RedisGateway is the Gateway backed by a go-redis client.
type RedisGateway struct {
	redis *redis.Client
}

var _ Gateway = (*RedisGateway)(nil)

// NewRedisGateway wraps redisClient.
//
// Parameters:
//   - redisClient (*redis.Client): Connected go-redis client. Panics when nil.
//
// Returns:
//   - *RedisGateway: Gateway over the vendas_realtime namespace.
func NewRedisGateway(redisClient *redis.Client) *RedisGateway {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisGateway{redis: redisClient}
}

// Get retrieves the raw payload stored under key.
func (g *RedisGateway) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := g.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, errs.NewCacheUnavailable("get", err)
	}

	CacheHits.Inc()
	return data, nil
}

// Set stores payload under key with the given TTL.
func (g *RedisGateway) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := g.redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return errs.NewCacheUnavailable("set", err)
	}
	return nil
}

// DeleteNamespace walks the namespace with SCAN and deletes keys in batches.
// SCAN does not block the server the way KEYS would.
func (g *RedisGateway) DeleteNamespace(ctx context.Context) (int64, error) {
	var (
		removed int64
		batch   = make([]string, 0, scanBatch)
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := g.redis.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		removed += n
		batch = batch[:0]
		return nil
	}

	iter := g.redis.Scan(ctx, 0, namespacePattern(), scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				CacheErrors.WithLabelValues("delete").Inc()
				return removed, errs.NewCacheUnavailable("delete", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return removed, errs.NewCacheUnavailable("scan", err)
	}
	if err := flush(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return removed, errs.NewCacheUnavailable("delete", err)
	}

	CacheInvalidatedKeys.Add(float64(removed))
	return removed, nil
}

// Ping checks that Redis answers.
func (g *RedisGateway) Ping(ctx context.Context) error {
	if err := g.redis.Ping(ctx).Err(); err != nil {
		CacheErrors.WithLabelValues("ping").Inc()
		return errs.NewCacheUnavailable("ping", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (g *RedisGateway) Close() error {
	return g.redis.Close()
}
