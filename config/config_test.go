package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/questly")
	t.Setenv("ACCESS_TOKEN_SECRET", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/questly", cfg.DBURL)
	assert.Equal(t, "super-secret", cfg.AccessTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenRetention)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/questly")
	t.Setenv("ACCESS_TOKEN_SECRET", "super-secret")
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("REFRESH_TOKEN_TTL", "24h")
	t.Setenv("TOKEN_RETENTION", "72h")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 72*time.Hour, cfg.TokenRetention)
	assert.Equal(t, "client-id", cfg.GoogleClientID)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
