package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "SERVER_PORT", "SERVER_HOST", "DB_PATH", "CORS_ALLOWED_ORIGINS",
		"BANK_API_URL", "SESSION_KEY", "SESSION_MAX_AGE", "DRAFT_TTL", "DRAFT_PURGE_SCHEDULE",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:5001", cfg.Server.Addr)
	assert.Equal(t, "http://chase-bank-api.vercel.app/api", cfg.BankAPI.BaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.MaxAge)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, time.Hour, cfg.Drafts.TTL)
	assert.Equal(t, "@every 15m", cfg.Drafts.PurgeSchedule)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_KEY", "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4=")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("BANK_API_URL", "http://localhost:5000/api/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://ops.example.com")
	t.Setenv("DRAFT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:5000/api", cfg.BankAPI.BaseURL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, 30*time.Minute, cfg.Drafts.TTL)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	t.Run("production requires a session key", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_KEY", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("DRAFT_TTL", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "DRAFT_TTL")
	})
}
