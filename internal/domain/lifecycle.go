package domain

// LifecycleModules holds per-module results in kg CO2e.
type LifecycleModules struct {
	A1 float64 // raw materials
	A2 float64 // upstream transport
	A4 float64 // site transport
	A5 float64 // installation
	B1 float64 // use phase
	C  float64 // end of life, C1-C4
}

// Total is the net balance: negative is net storage, positive is net emission.
func (m LifecycleModules) Total() float64 {
	return m.A1 + m.A2 + m.A4 + m.A5 + m.B1 + m.C
}

// Aggregate evaluates every module for du declared units trucked distanceKm.
// Callers guarantee du >= 0 and distanceKm >= 0.
func Aggregate(du, distanceKm float64, f EmissionFactors) LifecycleModules {
	return LifecycleModules{
		A1: du * f.A1PerDU,
		A2: du * f.A2PerDU,
		A4: SiteTransport(du, distanceKm, f),
		A5: du * f.A5PerDU,
		B1: du * f.B1PerDU,
		C:  du * f.CPerDU,
	}
}

// SiteTransport is linear in both transported mass and distance.
func SiteTransport(du, distanceKm float64, f EmissionFactors) float64 {
	tonneKm := (du * f.MassTonnesPerDU) * distanceKm
	return tonneKm * f.TruckKgCO2ePerTonneKm
}

// Comparison measures the project against a conventional material's EPD.
type Comparison struct {
	EPDPerCubicMeter float64
	PerDU            float64
	Total            float64
	// Delta is positive when the hempcrete total is lower.
	Delta float64
}

// Compare normalizes an EPD value (kg CO2e per m³) to the DU basis.
func Compare(epdPerCubicMeter, du, total float64, f EmissionFactors) Comparison {
	perDU := epdPerCubicMeter * f.CubicMetersPerDU
	compTotal := du * perDU
	return Comparison{
		EPDPerCubicMeter: epdPerCubicMeter,
		PerDU:            perDU,
		Total:            compTotal,
		Delta:            compTotal - total,
	}
}
