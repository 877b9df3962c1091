package app

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/guttosm/vendas-realtime/config"
	"github.com/guttosm/vendas-realtime/internal/domain/dto"
	"github.com/redis/go-redis/v9"
)

func invalidPostgres() config.PostgresConfig {
	return config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	db, err := InitPostgres(config.Config{Postgres: invalidPostgres()})
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Postgres: invalidPostgres()}

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func miniredisConfig(t *testing.T, mr *miniredis.Miniredis) config.RedisConfig {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("miniredis port: %v", err)
	}
	return config.RedisConfig{Host: mr.Host(), Port: port, TTL: time.Minute}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client := InitRedis(config.Config{Redis: miniredisConfig(t, mr)})
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Set(t.Context(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("client not usable: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("value not stored in configured redis: %q", got)
	}
}

func TestInitRedis_UnreachableIsTolerated(t *testing.T) {
	client := InitRedis(config.Config{Redis: config.RedisConfig{Host: "127.0.0.1", Port: 63999}})
	if client == nil {
		t.Fatalf("expected a client even when redis is down")
	}
	_ = client.Close()
}

func TestInitializeApp_HappyPath(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mr := miniredis.RunT(t)

	oldCfg := config.AppConfig
	oldPG, oldRedis := postgresOpener, redisOpener
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "8083", Location: time.UTC},
		Redis:  miniredisConfig(t, mr),
		Auth:   config.AuthConfig{SecretKey: "s3cret"},
	}
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	redisOpener = func(cfg config.Config) *redis.Client {
		return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), MaxRetries: -1})
	}
	t.Cleanup(func() {
		config.AppConfig = oldCfg
		postgresOpener, redisOpener = oldPG, oldRedis
	})

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}
	defer cleanup()

	for _, path := range []string{"/", "/healthz", "/readyz", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health dto.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if health.Redis != "connected" || health.Database != "connected" {
		t.Fatalf("unexpected health: %+v", health)
	}

	// protected route is mounted behind the configured secret
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cache", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("DELETE /cache without secret: status=%d", w.Code)
	}

	mr.Close()
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if w.Code != http.StatusOK || health.Redis != "disconnected" {
		t.Fatalf("redis outage not reported: %d %+v", w.Code, health)
	}
}
