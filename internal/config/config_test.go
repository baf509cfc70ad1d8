package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// t.Setenv forbids t.Parallel, so these tests run sequentially.

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://notes@localhost/notes")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "notesd", cfg.JWTIssuer)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.DefaultPageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("DEFAULT_PAGE_SIZE", "20")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.CORSAllowCredentials)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestLoad_MemoryStorageNeedsNoDatabase(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"bad storage", map[string]string{"STORAGE": "s3"}},
		{"bad driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"bad ttl", map[string]string{"JWT_TTL": "forever"}},
		{"bad page size", map[string]string{"DEFAULT_PAGE_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
