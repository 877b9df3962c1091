package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/internal/domain/dto"
	"golang.org/x/sync/errgroup"
)

const (
	statusConnected    = "connected"
	statusDisconnected = "disconnected"

	healthCheckTimeout = 2 * time.Second
)

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

// HealthHandler provides the root banner, the detailed /health report and the
// liveness and readiness probes.
//
// Responsibilities:
//   - /:        service banner.
//   - /health:  Redis and database status; always 200 so callers can read it.
//   - /healthz: liveness probe (always 200).
//   - /readyz:  readiness probe (503 when the database is unreachable).
type HealthHandler struct {
	dbPing    PingFunc
	cachePing PingFunc
	loc       *time.Location
	now       func() time.Time
}

// NewHealthHandler constructs a HealthHandler with the provided ping functions.
//
// Parameters:
//   - dbPing (PingFunc): Checks that PostgreSQL is reachable. Typically db.PingContext.
//   - cachePing (PingFunc): Checks that Redis answers.
//   - loc (*time.Location): Timezone of the /health timestamp. Nil means UTC.
//
// Nil ping functions report the dependency as connected.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(dbPing, cachePing PingFunc, loc *time.Location) *HealthHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &HealthHandler{dbPing: dbPing, cachePing: cachePing, loc: loc, now: time.Now}
}

// Register mounts the endpoints into the provided Gin router.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Description  Returns ready if the database is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if !h.check(c.Request.Context(), h.dbPing) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}

// Root godoc
// @Summary      Service banner
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API Vendas Real Time",
		"status":  "online",
	})
}

// Health checks Redis and the database concurrently, each bounded by a 2s
// timeout, and always answers 200 with both statuses.
//
// Health godoc
// @Summary      Dependency status
// @Description  Reports Redis and database connectivity. The service itself is healthy whenever it answers.
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	var redisOK, dbOK bool

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		redisOK = h.check(ctx, h.cachePing)
		return nil
	})
	g.Go(func() error {
		dbOK = h.check(ctx, h.dbPing)
		return nil
	})
	_ = g.Wait()

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().In(h.loc).Format(time.RFC3339),
		Redis:     connectionStatus(redisOK),
		Database:  connectionStatus(dbOK),
	})
}

func (h *HealthHandler) check(ctx context.Context, ping PingFunc) bool {
	if ping == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return ping(ctx) == nil
}

func connectionStatus(ok bool) string {
	if ok {
		return statusConnected
	}
	return statusDisconnected
}
