package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
)

// Postgres-backed implementation of the FactorRepository port. A row of
// emission_factor_sets is selected by name.
type PostgresFactorRepository struct {
	DB   *sql.DB
	Name string
}

func NewPostgresFactorRepository(db *sql.DB, name string) *PostgresFactorRepository {
	return &PostgresFactorRepository{DB: db, Name: name}
}

func (p *PostgresFactorRepository) LoadFactors(ctx context.Context) (_ domain.EmissionFactors, err error) {
	defer obs.Time(ctx, "factors.postgres.LoadFactors")(&err)

	if p.DB == nil {
		return domain.EmissionFactors{}, errors.New("postgres factor repository: DB is nil")
	}
	if p.Name == "" {
		return domain.EmissionFactors{}, errors.New("postgres factor repository: factor set name is empty")
	}

	query := `
	SELECT
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
	FROM emission_factor_sets
	WHERE name = $1;
	`

	var f domain.EmissionFactors
	err = p.DB.QueryRowContext(ctx, query, p.Name).Scan(
		&f.Name,
		&f.A1PerDU,
		&f.A2PerDU,
		&f.A5PerDU,
		&f.B1PerDU,
		&f.CPerDU,
		&f.MassTonnesPerDU,
		&f.TruckKgCO2ePerTonneKm,
		&f.SquareMetersPerSquareFoot,
		&f.DetourFactor,
		&f.CubicMetersPerDU,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EmissionFactors{}, fmt.Errorf("load factors: factor set %q not found", p.Name)
	}
	if err != nil {
		return domain.EmissionFactors{}, fmt.Errorf("load factors: query emission_factor_sets: %w", err)
	}

	if err := f.Validate(); err != nil {
		return domain.EmissionFactors{}, err
	}

	return f, nil
}
