package main

//
//  @title           vendas-realtime API
//  @version         1.0
//  @description     Real-time sales per store, read from PostgreSQL and cached in Redis.
//  @termsOfService  https://github.com/guttosm/vendas-realtime
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/vendas-realtime
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8083
//  @BasePath        /
//  @schemes         http
//
//  @securityDefinitions.apikey  SecretKey
//  @in                          header
//  @name                        X-Secret-Key
//
//  @tag.name        vendas
//  @tag.description Sales aggregated by store
//
//  @tag.name        health
//  @tag.description Banner, dependency status and probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on images without zoneinfo

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/config"
	_ "github.com/guttosm/vendas-realtime/docs" // swagger docs
	"github.com/guttosm/vendas-realtime/internal/app"
	"github.com/guttosm/vendas-realtime/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (DB pool, Redis client).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the vendas-realtime API.
//
// Flags:
//   - --port: Port for the API server. Defaults to PORT from config (8083).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()
	gin.SetMode(gin.ReleaseMode)

	port := flag.String("port", config.AppConfig.Server.Port, "Port for the API server")
	flag.Parse()

	if config.AppConfig.Auth.SecretKey == "" {
		logger.L().Warn().Msg("SECRET_KEY is not set; protected endpoints will answer 500")
	}

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	server := startServer(router, *port)
	gracefulShutdown(ctx, server, cleanup)
}
