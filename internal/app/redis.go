package app

import (
	"context"
	"time"

	"github.com/guttosm/vendas-realtime/config"
	"github.com/guttosm/vendas-realtime/internal/logger"
	"github.com/redis/go-redis/v9"
)

const redisIOTimeout = 2 * time.Second

// InitRedis builds the Redis client for the sales cache.
//
// The cache is optional for serving requests, so an unreachable Redis is only
// logged; the service answers from the database until Redis comes back.
func InitRedis(cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  connectTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.L().Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("redis unreachable, serving from database only")
	} else {
		logger.L().Info().Str("addr", cfg.Redis.Addr()).Int("db", cfg.Redis.DB).Msg("redis connected")
	}

	return client
}

// redisOpener is an indirection used by InitializeApp; overridden in tests.
var redisOpener = InitRedis
