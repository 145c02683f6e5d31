package ports

import (
	"context"
	"hempcrete-carbon-service/internal/domain"
)

// Road distance and travel duration between two points.
type DistanceResult struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Contract for retrieving road distance between coordinates.
type DistanceProvider interface {
	// Return driving distance and estimated duration from origin to destination.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
