package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
)

// Initialize the Postgres schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFactorSetsQuery := `
	CREATE TABLE IF NOT EXISTS emission_factor_sets (
		name TEXT PRIMARY KEY,
		a1_per_du DOUBLE PRECISION NOT NULL,
		a2_per_du DOUBLE PRECISION NOT NULL,
		a5_per_du DOUBLE PRECISION NOT NULL,
		b1_per_du DOUBLE PRECISION NOT NULL,
		c_per_du DOUBLE PRECISION NOT NULL,
		mass_tonnes_per_du DOUBLE PRECISION NOT NULL CHECK (mass_tonnes_per_du >= 0),
		truck_kg_co2e_per_tonne_km DOUBLE PRECISION NOT NULL CHECK (truck_kg_co2e_per_tonne_km >= 0),
		square_meters_per_square_foot DOUBLE PRECISION NOT NULL CHECK (square_meters_per_square_foot > 0),
		detour_factor DOUBLE PRECISION NOT NULL CHECK (detour_factor >= 1),
		cubic_meters_per_du DOUBLE PRECISION NOT NULL CHECK (cubic_meters_per_du > 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	if _, err := tx.ExecContext(ctx, createFactorSetsQuery); err != nil {
		return fmt.Errorf("init schema: create emission_factor_sets: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert a factor set read from a YAML file.
func SeedFromYAML(ctx context.Context, db *sql.DB, yamlPath string) (domain.EmissionFactors, error) {
	f, err := NewYAMLFactorRepository(yamlPath).LoadFactors(ctx)
	if err != nil {
		return domain.EmissionFactors{}, fmt.Errorf("seed factors: %w", err)
	}

	if err := UpsertFactors(ctx, db, f); err != nil {
		return domain.EmissionFactors{}, err
	}

	return f, nil
}

// Insert or replace one factor set.
func UpsertFactors(ctx context.Context, db *sql.DB, f domain.EmissionFactors) error {
	if db == nil {
		return errors.New("seed factors: DB is nil")
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("seed factors: %w", err)
	}

	query := `
	INSERT INTO emission_factor_sets (
		name,
		a1_per_du,
		a2_per_du,
		a5_per_du,
		b1_per_du,
		c_per_du,
		mass_tonnes_per_du,
		truck_kg_co2e_per_tonne_km,
		square_meters_per_square_foot,
		detour_factor,
		cubic_meters_per_du
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (name) DO UPDATE
	SET a1_per_du = EXCLUDED.a1_per_du,
		a2_per_du = EXCLUDED.a2_per_du,
		a5_per_du = EXCLUDED.a5_per_du,
		b1_per_du = EXCLUDED.b1_per_du,
		c_per_du = EXCLUDED.c_per_du,
		mass_tonnes_per_du = EXCLUDED.mass_tonnes_per_du,
		truck_kg_co2e_per_tonne_km = EXCLUDED.truck_kg_co2e_per_tonne_km,
		square_meters_per_square_foot = EXCLUDED.square_meters_per_square_foot,
		detour_factor = EXCLUDED.detour_factor,
		cubic_meters_per_du = EXCLUDED.cubic_meters_per_du,
		updated_at = now();
	`

	_, err := db.ExecContext(ctx, query,
		f.Name,
		f.A1PerDU,
		f.A2PerDU,
		f.A5PerDU,
		f.B1PerDU,
		f.CPerDU,
		f.MassTonnesPerDU,
		f.TruckKgCO2ePerTonneKm,
		f.SquareMetersPerSquareFoot,
		f.DetourFactor,
		f.CubicMetersPerDU,
	)
	if err != nil {
		return fmt.Errorf("seed factors: upsert name=%q: %w", f.Name, err)
	}

	return nil
}
