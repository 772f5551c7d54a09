package routing

import (
	"context"
	"fmt"
	"trip-planner-service/internal/ports"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// MockDistanceProvider serves fixed pairs; used by tests and when no ORS
// key is configured.
type MockDistanceProvider struct {
	m map[string]ports.DistanceResult
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[normalize(p.From)+"|"+normalize(p.To)] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

// Symmetric returns pairs in both directions.
func Symmetric(pairs []MockPair) []MockPair {
	out := make([]MockPair, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, p, MockPair{From: p.To, To: p.From, Meters: p.Meters, Seconds: p.Seconds})
	}
	return out
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	r, ok := p.m[normalize(origin)+"|"+normalize(destination)]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return r, nil
}
