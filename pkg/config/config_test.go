package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_EXPIRY", "")

	cfg := Load()
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.SessionExpiry)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendOrigin)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SESSION_EXPIRY", "24h")
	t.Setenv("FRONTEND_ORIGIN", "https://cal.example.com")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiry)
	assert.Equal(t, "https://cal.example.com", cfg.FrontendOrigin)
}
