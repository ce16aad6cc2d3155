package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Aggregation AggregationConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	// AdminSecret verifies tokens issued by the external auth service.
	// This service never issues tokens itself.
	AdminSecret string
}

type AggregationConfig struct {
	// EnabledSources is the ordered list of source ids processed per run.
	EnabledSources []string
	// SourceDelay is the courtesy pause between consecutive sources.
	SourceDelay time.Duration
	// RetentionDays bounds the maintenance purge of past-dated events.
	RetentionDays int

	TicketmasterAPIKey string
	InsiderBaseURL     string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDurationSeconds("DB_CONNECT_TIMEOUT_SECONDS", 0),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDurationSeconds("DB_POOL_MAX_CONN_LIFETIME_SECONDS", 0),
		PoolMaxConnIdleTime:   optDurationSeconds("DB_POOL_MAX_CONN_IDLE_SECONDS", 0),
		PoolHealthCheckPeriod: optDurationSeconds("DB_POOL_HEALTHCHECK_SECONDS", 0),
	}

	cfg.JWT = JWTConfig{
		AdminSecret: req("ADMIN_JWT_SECRET"),
	}

	cfg.Aggregation = AggregationConfig{
		EnabledSources:     splitCSV(opt("AGG_SOURCES"), []string{"ticketmaster", "insider", "bookmyshow"}),
		SourceDelay:        time.Duration(optInt("AGG_SOURCE_DELAY_MS", 1000)) * time.Millisecond,
		RetentionDays:      optInt("AGG_RETENTION_DAYS", 30),
		TicketmasterAPIKey: opt("TICKETMASTER_API_KEY"),
		InsiderBaseURL:     opt("INSIDER_BASE_URL"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func optDurationSeconds(key string, def time.Duration) time.Duration {
	v := optInt(key, 0)
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}

func splitCSV(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
