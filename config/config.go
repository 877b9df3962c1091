package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// server settings, the PostgreSQL sales database, the Redis cache and the shared secret.
//
// Example ENV equivalent:
//
//	PORT=8083
//	BD_A7_HOST=localhost
//	BD_A7_PORT=5432
//	BD_A7_NAME=a7
//	BD_A7_USER=reader
//	BD_A7_PASSWORD=secret
//	REDIS_HOST=localhost
//	REDIS_PORT=6379
//	REDIS_DB=0
//	SECRET_KEY=change-me
//	TIMEZONE=America/Sao_Paulo
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Redis    RedisConfig    // Redis cache settings
	Auth     AuthConfig     // Shared secret for protected endpoints
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string         // TCP port the HTTP server listens on (e.g., "8083")
	Timezone           string         // IANA zone name used to resolve "today" and date params
	Location           *time.Location // Parsed Timezone
	RateLimitPerMinute int            // Requests allowed per client IP per minute
	TrustedProxies     []string       // Proxies allowed to set X-Forwarded-For; empty trusts none
}

// PostgresConfig defines connection details for the sales database.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// RedisConfig defines connection details and TTL for the result cache.
type RedisConfig struct {
	Host     string
	Port     int
	DB       int
	Password string
	TTL      time.Duration
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig carries the X-Secret-Key value. An empty secret makes protected
// endpoints answer 500 instead of silently allowing access.
type AuthConfig struct {
	SecretKey string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read by app.InitializeApp and main.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("PORT", "8083")
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	viper.SetDefault("TRUSTED_PROXIES", "")

	viper.SetDefault("BD_A7_HOST", "localhost")
	viper.SetDefault("BD_A7_PORT", 5432)
	viper.SetDefault("BD_A7_SSLMODE", "disable")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("CACHE_TTL", "5m")

	viper.SetDefault("SECRET_KEY", "")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("PORT"),
			Timezone:           viper.GetString("TIMEZONE"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			TrustedProxies:     splitList(viper.GetString("TRUSTED_PROXIES")),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("BD_A7_HOST"),
			Port:     viper.GetInt("BD_A7_PORT"),
			User:     viper.GetString("BD_A7_USER"),
			Password: viper.GetString("BD_A7_PASSWORD"),
			DBName:   viper.GetString("BD_A7_NAME"),
			SSLMode:  viper.GetString("BD_A7_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			DB:       viper.GetInt("REDIS_DB"),
			Password: viper.GetString("REDIS_PASSWORD"),
			TTL:      viper.GetDuration("CACHE_TTL"),
		},
		Auth: AuthConfig{
			SecretKey: viper.GetString("SECRET_KEY"),
		},
	}

	AppConfig.Postgres.URL = PostgresDSN(AppConfig.Postgres)

	if loc, err := time.LoadLocation(AppConfig.Server.Timezone); err == nil {
		AppConfig.Server.Location = loc
	}

	validateConfig()
}

// PostgresDSN builds the database/sql connection string for lib/pq.
// User and password are escaped, so secrets may contain URL delimiters.
func PostgresDSN(pg PostgresConfig) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.User, pg.Password),
		Host:     net.JoinHostPort(pg.Host, strconv.Itoa(pg.Port)),
		Path:     "/" + pg.DBName,
		RawQuery: url.Values{"sslmode": []string{pg.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// SECRET_KEY is intentionally not required here: its absence is reported per
// request by the auth middleware.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}

// missingFields lists every critical field of cfg that is empty or invalid.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "PORT")
	}
	if cfg.Server.Location == nil {
		missing = append(missing, "TIMEZONE")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "BD_A7_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "BD_A7_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "BD_A7_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "BD_A7_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "BD_A7_NAME")
	}
	if cfg.Redis.Host == "" {
		missing = append(missing, "REDIS_HOST")
	}
	if cfg.Redis.Port == 0 {
		missing = append(missing, "REDIS_PORT")
	}
	if cfg.Redis.TTL <= 0 {
		missing = append(missing, "CACHE_TTL")
	}

	return missing
}
