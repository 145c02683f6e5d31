package distance

import (
	"context"
	"fmt"
	"hempcrete-carbon-service/internal/domain"
	"hempcrete-carbon-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
}

// MockDistanceProvider answers from a fixed table and fails for unknown pairs.
type MockDistanceProvider struct {
	m     map[[2]domain.Coordinates]ports.DistanceResult
	Calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Coordinates]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	p.Calls++
	r, ok := p.m[[2]domain.Coordinates{origin, destination}]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %+v -> %+v", origin, destination)
	}

	return r, nil
}
