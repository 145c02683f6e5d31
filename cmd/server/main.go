package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/adapters/distance"
	"hempcrete-carbon-service/internal/adapters/repositories"
	"hempcrete-carbon-service/internal/api"
	"hempcrete-carbon-service/internal/config"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/db"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, factor source) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log.Logger = obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Factors are loaded once; the table is immutable for the life of the process.
	factors, err := loadFactors(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load emission factors")
	}

	metrics := obs.NewMetrics()
	metrics.FactorSet.WithLabelValues(factors.Name).Set(1)

	geocoder, err := distance.NewNominatimGeocoder(cfg.GeocoderURL, cfg.GeocoderCountry, cfg.GeocoderUserAgent, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build geocoder")
	}
	provider, err := distance.NewOSRMDistanceProvider(cfg.RouterURL, cfg.RouterProfile, cfg.GeocoderUserAgent, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build routing provider")
	}

	router := api.NewRouter(api.Deps{
		Geocoder: geocoder,
		Provider: provider,
		Factors:  factors,
		Origin:   domain.Coordinates{Lat: cfg.OriginLat, Lon: cfg.OriginLon},
		Metrics:  metrics,
	})

	// A calculation makes two sequential upstream calls, each bounded by HTTPTimeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2*cfg.HTTPTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("factor_set", factors.Name).
			Str("geocoder", cfg.GeocoderURL).
			Str("router", cfg.RouterURL).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// loadFactors picks the factor source: Postgres when DATABASE_URL is set,
// else a YAML file when FACTORS_PATH is set, else the built-in table.
func loadFactors(ctx context.Context, cfg *config.Config) (domain.EmissionFactors, error) {
	var repo ports.FactorRepository
	var conn *sql.DB

	switch {
	case cfg.DatabaseURL != "":
		var err error
		conn, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return domain.EmissionFactors{}, fmt.Errorf("load factors: %w", err)
		}
		defer conn.Close()
		repo = repositories.NewPostgresFactorRepository(conn, cfg.FactorSet)
	case cfg.FactorsPath != "":
		repo = repositories.NewYAMLFactorRepository(cfg.FactorsPath)
	default:
		repo = repositories.StaticFactorRepository{Factors: domain.DefaultEmissionFactors()}
	}

	return repo.LoadFactors(ctx)
}
