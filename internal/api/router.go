package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/internal/logger"
	"github.com/guttosm/vendas-realtime/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultRequestTimeout = 10 * time.Second

// RouterOptions carries the settings the router needs from configuration.
type RouterOptions struct {
	// SecretKey is the shared secret expected in X-Secret-Key. Empty makes
	// protected routes answer 500.
	SecretKey string
	// RateLimitPerMinute is the per-IP request budget; <= 0 disables it.
	RateLimitPerMinute int
	// RequestTimeout bounds every request context. Zero means 10s.
	RequestTimeout time.Duration
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is honored
	// when resolving the client IP. Empty trusts none.
	TrustedProxies []string
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Parameters:
//   - handler (*Handler): Sales handler with the service already injected.
//   - opts (RouterOptions): Secret key, rate limit, request timeout and trusted proxies.
//
// Returns:
//   - *gin.Engine: The configured router.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures the protected sales routes behind the secret key check.
//
// Note:
//   - /, /health, /healthz and /readyz are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	router := gin.New()

	// Client IP feeds the rate limiter, so forwarded headers only count from known proxies.
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		logger.L().Warn().Err(err).Strs("trusted_proxies", opts.TrustedProxies).
			Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
		middleware.Timeout(opts.RequestTimeout),
	)

	// ─── Swagger / metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── Sales ────────────────────────────────────
	protected := router.Group("/", middleware.SecretKey(opts.SecretKey))
	{
		protected.GET("/vendas-realtime", handler.GetVendas)
		protected.DELETE("/cache", handler.ClearCache)
	}

	return router
}
