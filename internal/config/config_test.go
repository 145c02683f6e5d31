package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.GeocoderURL)
	assert.Equal(t, "USA", cfg.GeocoderCountry)
	assert.Equal(t, "hempcrete-carbon-service", cfg.GeocoderUserAgent)
	assert.Equal(t, "http://router.project-osrm.org", cfg.RouterURL)
	assert.Equal(t, "driving", cfg.RouterProfile)
	assert.Equal(t, 40.6840, cfg.OriginLat)
	assert.Equal(t, -74.1419, cfg.OriginLon)
	assert.Empty(t, cfg.FactorsPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "hempcrete-default", cfg.FactorSet)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("GEOCODER_URL", "http://localhost:7070")
	t.Setenv("GEOCODER_COUNTRY", "CAN")
	t.Setenv("ROUTER_URL", "http://localhost:5000")
	t.Setenv("ORIGIN_LAT", "49.2827")
	t.Setenv("ORIGIN_LON", "-123.1207")
	t.Setenv("FACTORS_PATH", "data/factors/hempcrete.yaml")
	t.Setenv("DATABASE_URL", "postgres://localhost/hemp")
	t.Setenv("FACTOR_SET", "west-coast")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:7070", cfg.GeocoderURL)
	assert.Equal(t, "CAN", cfg.GeocoderCountry)
	assert.Equal(t, "http://localhost:5000", cfg.RouterURL)
	assert.Equal(t, 49.2827, cfg.OriginLat)
	assert.Equal(t, -123.1207, cfg.OriginLon)
	assert.Equal(t, "data/factors/hempcrete.yaml", cfg.FactorsPath)
	assert.Equal(t, "postgres://localhost/hemp", cfg.DatabaseURL)
	assert.Equal(t, "west-coast", cfg.FactorSet)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidHTTPTimeout(t *testing.T) {
	for _, v := range []string{"soon", "0s", "-5s"} {
		t.Setenv("HTTP_TIMEOUT", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "HTTP_TIMEOUT")
	}
}

func TestLoad_InvalidOrigin(t *testing.T) {
	t.Setenv("ORIGIN_LAT", "91")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORIGIN_LAT")

	t.Setenv("ORIGIN_LAT", "40")
	t.Setenv("ORIGIN_LON", "east")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORIGIN_LON")
}

func TestGet(t *testing.T) {
	t.Setenv("HEMP_TEST_KEY", "set")
	assert.Equal(t, "set", Get("HEMP_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Get("HEMP_TEST_MISSING", "fallback"))
}
