package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	LogLevel           string
	Port               string
	DefaultLocale      string
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int

	WebhookURL        string
	WebhookPollEvery  time.Duration
	WebhookPollLimit  time.Duration
	WebhookReqTimeout time.Duration

	VideoServiceURL      string
	VideoPollInterval    time.Duration
	VideoPollMaxAttempts int

	StoreDriver string
	DatabaseURL string
	DBMaxConns  int
	SQLitePath  string
	RedisURL    string

	WorkerConcurrency int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		Port:                 getEnv("PORT", "8080"),
		DefaultLocale:        getEnv("DEFAULT_LOCALE", "es"),
		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		HTTPReadTimeout:      time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:     time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:      time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		WebhookURL:           strings.TrimSpace(os.Getenv("N8N_WEBHOOK_URL")),
		WebhookPollEvery:     time.Millisecond * time.Duration(getEnvPositiveInt("N8N_POLL_INTERVAL_MS", 3000)),
		WebhookPollLimit:     time.Millisecond * time.Duration(getEnvPositiveInt("N8N_POLL_TIMEOUT_MS", 60000)),
		WebhookReqTimeout:    time.Millisecond * time.Duration(getEnvPositiveInt("N8N_REQUEST_TIMEOUT_MS", 110000)),
		VideoServiceURL:      getEnv("SHORT_VIDEO_MAKER_URL", "http://localhost:3123"),
		VideoPollInterval:    time.Millisecond * time.Duration(getEnvPositiveInt("VIDEO_POLL_INTERVAL_MS", 5000)),
		VideoPollMaxAttempts: getEnvPositiveInt("VIDEO_POLL_MAX_ATTEMPTS", 60),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBMaxConns:           getEnvPositiveInt("DB_MAX_CONNS", 10),
		SQLitePath:           getEnv("SQLITE_PATH", "./data/content.db"),
		RedisURL:             strings.TrimSpace(os.Getenv("REDIS_URL")),
		WorkerConcurrency:    getEnvPositiveInt("WORKER_CONCURRENCY", 4),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case StoreDriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvPositiveInt treats zero, negative and non-numeric values as unset.
func getEnvPositiveInt(key string, fallback int) int {
	if i := getEnvInt(key, fallback); i > 0 {
		return i
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
