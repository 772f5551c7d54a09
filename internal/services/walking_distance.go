package services

import (
	"context"
	"fmt"
	"math"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const (
	walkingSpeedKmh = 4.5
	// Streets are never straight; inflate the crow-flies distance.
	detourFactor = 1.3
)

// StraightLineDistances estimates walking legs between known positions.
// It implements ports.DistanceMatrixProvider without any I/O.
type StraightLineDistances struct {
	positions map[string]domain.Coordinates
}

func NewStraightLineDistances(positions map[string]domain.Coordinates) *StraightLineDistances {
	return &StraightLineDistances{positions: positions}
}

// PositionsFromPlan collects the hotel, POI and restaurant positions of a
// plan. Records without a position are left out.
func PositionsFromPlan(plan *domain.TripPlan) map[string]domain.Coordinates {
	out := make(map[string]domain.Coordinates)
	if plan == nil {
		return out
	}
	if !plan.Hotel.Position.IsZero() {
		out[plan.Hotel.Name] = plan.Hotel.Position
	}
	for _, s := range plan.Slots {
		if s.POI != nil && !s.POI.Position.IsZero() {
			out[s.POI.Name] = s.POI.Position
		}
		if s.Restaurant != nil && !s.Restaurant.Position.IsZero() {
			out[s.Restaurant.Name] = s.Restaurant.Position
		}
	}
	return out
}

func (s *StraightLineDistances) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	from, ok := s.positions[origin]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("straight line distance: no position for %q", origin)
	}
	to, ok := s.positions[destination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("straight line distance: no position for %q", destination)
	}

	km := from.DistanceKm(to) * detourFactor
	return ports.DistanceResult{
		DistanceMeters:  int(math.Round(km * 1000)),
		DurationSeconds: int(math.Round(km / walkingSpeedKmh * 3600)),
	}, nil
}

func (s *StraightLineDistances) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, err := s.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, err
		}
		out[d] = r
	}
	return out, nil
}
