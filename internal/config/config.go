package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPAddr             string
	Storage              string
	DatabaseURL          string
	DBDriver             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	DefaultPageSize int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		Storage:              strings.ToLower(getenv("STORAGE", StoragePostgres)),
		DBDriver:             strings.ToLower(getenv("DB_DRIVER", "pgx")),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		JWTIssuer:            getenv("JWT_ISSUER", "notesd"),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		LogFormat:            getenv("LOG_FORMAT", "text"),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %q", os.Getenv("JWT_TTL"))
	}
	cfg.JWTTTL = ttl

	size, err := strconv.Atoi(getenv("DEFAULT_PAGE_SIZE", "12"))
	if err != nil || size < 1 {
		return Config{}, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %q", os.Getenv("DEFAULT_PAGE_SIZE"))
	}
	cfg.DefaultPageSize = size

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL, err = requireEnv("DATABASE_URL"); err != nil {
			return Config{}, err
		}
	case StorageMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE: %q", cfg.Storage)
	}

	switch cfg.DBDriver {
	case "pgx", "postgres":
	default:
		return Config{}, fmt.Errorf("invalid DB_DRIVER: %q", cfg.DBDriver)
	}

	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func requireEnv(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("missing env: %s", key)
	}
	return v, nil
}
