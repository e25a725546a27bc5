package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-that-is-long-enough-123")

	cfg, err := Load()
	require.NoError(t, err, "failed to load config")

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "movie_backend", cfg.DBName)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.Error(t, err, "should fail without JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-that-is-long-enough-123")
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg, err := Load()
	require.NoError(t, err, "failed to load config")

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestConfig_RedisAddr(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{"redis not configured", "", "6379", ""},
		{"redis configured", "cache.local", "6380", "cache.local:6380"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{RedisHost: tt.host, RedisPort: tt.port}

			assert.Equal(t, tt.expected, cfg.RedisAddr())
			assert.Equal(t, tt.expected != "", cfg.UseRedisCache())
		})
	}
}
