package ports

import (
	"context"
	"hempcrete-carbon-service/internal/domain"
)

// Contract for resolving a postal code to coordinates.
type Geocoder interface {
	// Return the coordinates of the first match for postalCode.
	// An empty match list is reported as an error.
	GeocodePostalCode(ctx context.Context, postalCode string) (domain.Coordinates, error)
}
