package services

import (
	"context"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/platform/obs"
	"hempcrete-carbon-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// ResolveLocation geocodes postalCode. Any lookup failure, including a nil
// geocoder, yields fallback tagged as SourceFallback; it never fails.
func ResolveLocation(
	ctx context.Context,
	geocoder ports.Geocoder,
	postalCode string,
	fallback domain.Coordinates,
) domain.Location {
	if geocoder == nil {
		return domain.Location{Point: fallback, Source: domain.SourceFallback}
	}

	point, err := geocoder.GeocodePostalCode(ctx, postalCode)
	if err != nil {
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Str("postal_code", postalCode).
			Err(err).
			Msg("geocode failed, using supply port")
		return domain.Location{Point: fallback, Source: domain.SourceFallback}
	}

	return domain.Location{Point: point, Source: domain.SourceLive}
}
