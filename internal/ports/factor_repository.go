package ports

import (
	"context"
	"hempcrete-carbon-service/internal/domain"
)

// Port: a boundary for loading the emission factor table at startup.
type FactorRepository interface {
	LoadFactors(ctx context.Context) (domain.EmissionFactors, error)
}
