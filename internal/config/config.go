package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Port Newark, NJ: the supply port every shipment starts from.
const (
	defaultOriginLat = 40.6840
	defaultOriginLon = -74.1419
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Timeout applied to each geocoding and routing call.
	HTTPTimeout time.Duration

	GeocoderURL       string
	GeocoderCountry   string
	GeocoderUserAgent string
	RouterURL         string
	RouterProfile     string

	OriginLat float64
	OriginLon float64

	// Factor table source: DATABASE_URL wins over FACTORS_PATH; neither
	// means built-in defaults.
	FactorsPath string
	DatabaseURL string
	FactorSet   string
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	return sharedcfg.EnvOrDefault(key, fallback)
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	httpTimeout, err := time.ParseDuration(Get("HTTP_TIMEOUT", "10s"))
	if err != nil || httpTimeout <= 0 {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	originLat, err := parseDegrees("ORIGIN_LAT", defaultOriginLat, 90)
	if err != nil {
		return nil, err
	}
	originLon, err := parseDegrees("ORIGIN_LON", defaultOriginLon, 180)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            Get("PORT", "8080"),
		LogLevel:        Get("LOG_LEVEL", "info"),
		LogFormat:       Get("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		HTTPTimeout:     httpTimeout,

		GeocoderURL:       Get("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderCountry:   Get("GEOCODER_COUNTRY", "USA"),
		GeocoderUserAgent: Get("GEOCODER_USER_AGENT", "hempcrete-carbon-service"),
		RouterURL:         Get("ROUTER_URL", "http://router.project-osrm.org"),
		RouterProfile:     Get("ROUTER_PROFILE", "driving"),

		OriginLat: originLat,
		OriginLon: originLon,

		FactorsPath: strings.TrimSpace(Get("FACTORS_PATH", "")),
		DatabaseURL: strings.TrimSpace(Get("DATABASE_URL", "")),
		FactorSet:   Get("FACTOR_SET", "hempcrete-default"),
	}

	if strings.TrimSpace(cfg.GeocoderURL) == "" {
		return nil, errors.New("GEOCODER_URL is required")
	}
	if strings.TrimSpace(cfg.RouterURL) == "" {
		return nil, errors.New("ROUTER_URL is required")
	}
	if cfg.DatabaseURL != "" && strings.TrimSpace(cfg.FactorSet) == "" {
		return nil, errors.New("FACTOR_SET is required when DATABASE_URL is set")
	}

	return cfg, nil
}

func parseDegrees(key string, fallback, limit float64) (float64, error) {
	s := Get(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > limit {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
