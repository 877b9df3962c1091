package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/config"
	"github.com/guttosm/vendas-realtime/internal/api"
	"github.com/guttosm/vendas-realtime/internal/cache"
	"github.com/guttosm/vendas-realtime/internal/service"
	"github.com/guttosm/vendas-realtime/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() (fatal for the caller if it fails).
//   - Builds the Redis client using InitRedis() (an unreachable Redis is tolerated).
//   - Wires the repository, cache gateway and sales service.
//   - Configures the Gin router and registers /, /health and the probes.
//   - Provides a cleanup function closing the database pool and the Redis client.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb := redisOpener(cfg)
	gateway := cache.NewRedisGateway(rdb)

	repo := storage.NewSalesRepository(db)
	svc := service.NewSalesService(repo, gateway, service.Options{
		TTL:      cfg.Redis.TTL,
		Location: cfg.Server.Location,
	})

	router := api.NewRouter(api.NewHandler(svc), api.RouterOptions{
		SecretKey:          cfg.Auth.SecretKey,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		TrustedProxies:     cfg.Server.TrustedProxies,
	})

	healthHandler := api.NewHealthHandler(
		func(ctx context.Context) error { return db.PingContext(ctx) },
		svc.CacheStatus,
		cfg.Server.Location,
	)
	healthHandler.Register(router)

	cleanup := func() {
		_ = gateway.Close()
		_ = db.Close()
	}

	return router, cleanup, nil
}
