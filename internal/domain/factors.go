package domain

import (
	"errors"
	"fmt"
	"math"
)

// EmissionFactors is the coefficient table behind every lifecycle module.
// Per-DU values are kg CO2e; negative values are storage.
type EmissionFactors struct {
	Name string `yaml:"name" json:"name"`

	A1PerDU float64 `yaml:"a1_per_du" json:"a1_per_du"`
	A2PerDU float64 `yaml:"a2_per_du" json:"a2_per_du"`
	A5PerDU float64 `yaml:"a5_per_du" json:"a5_per_du"`
	B1PerDU float64 `yaml:"b1_per_du" json:"b1_per_du"`
	CPerDU  float64 `yaml:"c_per_du" json:"c_per_du"`

	// A4 site transport: tonnes of material per DU and truck factor in kg CO2e per t·km.
	MassTonnesPerDU       float64 `yaml:"mass_tonnes_per_du" json:"mass_tonnes_per_du"`
	TruckKgCO2ePerTonneKm float64 `yaml:"truck_kg_co2e_per_tonne_km" json:"truck_kg_co2e_per_tonne_km"`

	SquareMetersPerSquareFoot float64 `yaml:"square_meters_per_square_foot" json:"square_meters_per_square_foot"`
	DetourFactor              float64 `yaml:"detour_factor" json:"detour_factor"`
	CubicMetersPerDU          float64 `yaml:"cubic_meters_per_du" json:"cubic_meters_per_du"`
}

// DefaultEmissionFactors returns the built-in hempcrete factor set.
func DefaultEmissionFactors() EmissionFactors {
	return EmissionFactors{
		Name:                      "hempcrete-default",
		A1PerDU:                   -43.95,
		A2PerDU:                   8.42,
		A5PerDU:                   42.44,
		B1PerDU:                   -31.70,
		CPerDU:                    11.94,
		MassTonnesPerDU:           0.0617,
		TruckKgCO2ePerTonneKm:     0.08,
		SquareMetersPerSquareFoot: 0.092903,
		DetourFactor:              1.2,
		CubicMetersPerDU:          0.3,
	}
}

// Validate rejects factor tables that would make results meaningless.
func (f EmissionFactors) Validate() error {
	if f.Name == "" {
		return errors.New("emission factors: name is required")
	}

	fields := []struct {
		name string
		v    float64
	}{
		{"a1_per_du", f.A1PerDU},
		{"a2_per_du", f.A2PerDU},
		{"a5_per_du", f.A5PerDU},
		{"b1_per_du", f.B1PerDU},
		{"c_per_du", f.CPerDU},
		{"mass_tonnes_per_du", f.MassTonnesPerDU},
		{"truck_kg_co2e_per_tonne_km", f.TruckKgCO2ePerTonneKm},
		{"square_meters_per_square_foot", f.SquareMetersPerSquareFoot},
		{"detour_factor", f.DetourFactor},
		{"cubic_meters_per_du", f.CubicMetersPerDU},
	}
	for _, fld := range fields {
		if math.IsNaN(fld.v) || math.IsInf(fld.v, 0) {
			return fmt.Errorf("emission factors %q: %s must be finite", f.Name, fld.name)
		}
	}

	if f.MassTonnesPerDU < 0 {
		return fmt.Errorf("emission factors %q: mass_tonnes_per_du must not be negative", f.Name)
	}
	if f.TruckKgCO2ePerTonneKm < 0 {
		return fmt.Errorf("emission factors %q: truck_kg_co2e_per_tonne_km must not be negative", f.Name)
	}
	if f.SquareMetersPerSquareFoot <= 0 {
		return fmt.Errorf("emission factors %q: square_meters_per_square_foot must be positive", f.Name)
	}
	if f.DetourFactor < 1 {
		return fmt.Errorf("emission factors %q: detour_factor must be at least 1", f.Name)
	}
	if f.CubicMetersPerDU <= 0 {
		return fmt.Errorf("emission factors %q: cubic_meters_per_du must be positive", f.Name)
	}

	return nil
}
