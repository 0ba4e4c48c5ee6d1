package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "JWT_TTL_HOURS", "REGISTER_RESPONSE_DELAY", "GEOCODE_BASE_URL",
		"MAX_PAGE_LIMIT", "RATE_LIMIT_RPS", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24, cfg.JWTTTL)
	assert.Equal(t, 3*time.Second, cfg.RegisterResponseDelay)
	assert.Equal(t, defaultGeocodeBaseURL, cfg.GeocodeBaseURL)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.InDelta(t, 10.0, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://localhost/attendance")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("REGISTER_RESPONSE_DELAY", "0s")
	t.Setenv("GEOCODE_CACHE_TTL", "90")
	t.Setenv("RATE_LIMIT_AUTH_RPS", "1.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.JWTTTL)
	assert.Equal(t, time.Duration(0), cfg.RegisterResponseDelay)
	assert.Equal(t, 90*time.Second, cfg.GeocodeCacheTTL)
	assert.InDelta(t, 1.5, cfg.RateLimitAuthRPS, 0.0001)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")
	t.Setenv("SHUTDOWN_TIMEOUT", "later")

	cfg := Load()

	assert.Equal(t, 24, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTTTL: 1, MaxPageLimit: 10}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
