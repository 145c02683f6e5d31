package main

import (
	"context"
	"database/sql"
	"fmt"
	"hempcrete-carbon-service/internal/adapters/repositories"
	"hempcrete-carbon-service/internal/config"
	"hempcrete-carbon-service/internal/platform/db"
	"hempcrete-carbon-service/internal/platform/obs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = obs.NewLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/factors/hempcrete.yaml")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.Fatal().Err(err).Msg("init and seed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")

	log.Info().Str("path", seedPath).Msg("seeding emission factors")
	f, err := repositories.SeedFromYAML(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info().Str("factor_set", f.Name).Msg("seeding complete")

	return nil
}
