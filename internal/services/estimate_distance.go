package services

import (
	"context"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"
	"math"

	"github.com/rs/zerolog/log"
)

// EstimateDistance returns the road distance in km from origin to
// destination. When the provider fails, it falls back to the great-circle
// distance scaled by detourFactor. The result is always finite and >= 0.
func EstimateDistance(
	ctx context.Context,
	provider ports.DistanceProvider,
	origin domain.Coordinates,
	destination domain.Coordinates,
	detourFactor float64,
) domain.Distance {
	if provider != nil {
		r, err := provider.GetDistance(ctx, origin, destination)
		if err == nil && finiteNonNegative(r.DistanceMeters) {
			return domain.Distance{Kilometers: r.DistanceMeters / 1000, Source: domain.SourceLive}
		}

		ev := log.Warn().Str("req_id", obs.RequestID(ctx))
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Float64("distance_meters", r.DistanceMeters)
		}
		ev.Msg("routing failed, using haversine estimate")
	}

	return domain.Distance{
		Kilometers: FallbackDistance(origin, destination, detourFactor),
		Source:     domain.SourceFallback,
	}
}

// FallbackDistance approximates road distance as haversine × detourFactor.
func FallbackDistance(origin, destination domain.Coordinates, detourFactor float64) float64 {
	km := domain.Haversine(origin, destination) * detourFactor
	if !finiteNonNegative(km) {
		return 0
	}
	return km
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
