package services

import (
	"context"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"
	"math"
	"strings"
)

type CalculateRequest struct {
	Input   domain.ProjectInput
	Factors domain.EmissionFactors
	// Origin is the supply port; it doubles as the geocoding fallback.
	Origin domain.Coordinates
}

// Calculate runs the full pipeline: validate, convert to DU, geocode,
// estimate distance, aggregate modules, and optionally compare against an
// EPD value. Only invalid input produces an error; external failures degrade
// to fallbacks recorded on the result.
func Calculate(
	ctx context.Context,
	req CalculateRequest,
	geocoder ports.Geocoder,
	provider ports.DistanceProvider,
) (_ domain.Calculation, err error) {
	defer obs.Time(ctx, "services.Calculate")(&err)

	in := req.Input
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	if err := in.Validate(); err != nil {
		return domain.Calculation{}, fmt.Errorf("calculate: %w", err)
	}

	f := req.Factors
	du := domain.DeclaredUnits(in.WallAreaSqFt, f)

	loc := ResolveLocation(ctx, geocoder, in.PostalCode, req.Origin)
	dist := EstimateDistance(ctx, provider, req.Origin, loc.Point, f.DetourFactor)

	modules := domain.Aggregate(du, dist.Kilometers, f)
	total := modules.Total()
	if !finite(modules.A1, modules.A2, modules.A4, modules.A5, modules.B1, modules.C, total) {
		return domain.Calculation{}, fmt.Errorf("calculate: %w: wall area %v overflows the lifecycle totals", domain.ErrInvalidInput, in.WallAreaSqFt)
	}

	calc := domain.Calculation{
		Input:         in,
		FactorSet:     f.Name,
		DeclaredUnits: du,
		Origin:        req.Origin,
		Location:      loc,
		Distance:      dist,
		Modules:       modules,
		Total:         total,
		CalculatedAt:  domain.Now(),
	}

	if in.Compare {
		c := domain.Compare(*in.EPDPerCubicMeter, du, total, f)
		if !finite(c.PerDU, c.Total, c.Delta) {
			return domain.Calculation{}, fmt.Errorf("calculate: %w: epd value %v overflows the comparison totals", domain.ErrInvalidInput, c.EPDPerCubicMeter)
		}
		calc.Comparison = &c
	}

	return calc, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
