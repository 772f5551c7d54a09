package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// PlanDayRoute orders a day's stops with a greedy nearest-neighbor walk.
//
// Each step moves to the remaining stop with the shortest travel duration;
// equal durations go to the lexically smaller name so the order is stable.
// This is not a tour optimizer.
func PlanDayRoute(
	ctx context.Context,
	day int,
	start string,
	stops []string,
	provider ports.DistanceProvider,
	returnToStart bool,
) (*domain.DayRoute, error) {
	if start == "" {
		return nil, errors.New("plan day route: start must be non-empty")
	}
	if provider == nil {
		return nil, errors.New("plan day route: distance provider is nil")
	}

	remaining := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		if s == "" || s == start {
			continue
		}
		remaining[s] = struct{}{}
	}

	route := &domain.DayRoute{Day: day, Start: start, Stops: []domain.RouteStop{}}
	current := start

	for len(remaining) > 0 {
		destinations := make([]string, 0, len(remaining))
		for d := range remaining {
			destinations = append(destinations, d)
		}

		results, err := lookupDistances(ctx, provider, current, destinations)
		if err != nil {
			return nil, fmt.Errorf("plan day route: day %d: %w", day, err)
		}

		var best string
		minDuration := math.MaxInt64
		for _, d := range destinations {
			r, ok := results[d]
			if !ok {
				return nil, fmt.Errorf("plan day route: missing distance result from %q to %q", current, d)
			}
			if r.DurationSeconds < minDuration || (r.DurationSeconds == minDuration && d < best) {
				minDuration = r.DurationSeconds
				best = d
			}
		}

		leg := results[best]
		route.Stops = append(route.Stops, domain.RouteStop{
			Name:            best,
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
		})
		route.TotalDistanceMeters += leg.DistanceMeters
		route.TotalDurationSeconds += leg.DurationSeconds

		delete(remaining, best)
		current = best
	}

	if returnToStart && current != start {
		back, err := provider.GetDistance(ctx, current, start)
		if err != nil {
			return nil, fmt.Errorf("plan day route: return leg from %q to %q: %w", current, start, err)
		}
		route.Stops = append(route.Stops, domain.RouteStop{
			Name:            start,
			DistanceMeters:  back.DistanceMeters,
			DurationSeconds: back.DurationSeconds,
		})
		route.TotalDistanceMeters += back.DistanceMeters
		route.TotalDurationSeconds += back.DurationSeconds
	}

	return route, nil
}

// PlanDayRoutes builds one hotel-to-hotel loop per trip day from the slots
// already assigned in plan.
func PlanDayRoutes(ctx context.Context, plan *domain.TripPlan, provider ports.DistanceProvider) ([]domain.DayRoute, error) {
	if plan == nil {
		return nil, errors.New("plan day routes: plan is nil")
	}

	byDay := make(map[int][]string)
	days := make([]int, 0, plan.Request.DurationDays)
	for _, s := range plan.Slots {
		if _, ok := byDay[s.Day]; !ok {
			days = append(days, s.Day)
			byDay[s.Day] = nil
		}
		if s.POI != nil {
			byDay[s.Day] = append(byDay[s.Day], s.POI.Name)
		}
		if s.Restaurant != nil {
			byDay[s.Day] = append(byDay[s.Day], s.Restaurant.Name)
		}
	}

	routes := make([]domain.DayRoute, 0, len(days))
	for _, day := range days {
		r, err := PlanDayRoute(ctx, day, plan.Hotel.Name, byDay[day], provider, true)
		if err != nil {
			return nil, fmt.Errorf("plan day routes: %w", err)
		}
		routes = append(routes, *r)
	}

	return routes, nil
}

// lookupDistances prefers one batched row when the provider supports it.
func lookupDistances(
	ctx context.Context,
	provider ports.DistanceProvider,
	origin string,
	destinations []string,
) (map[string]ports.DistanceResult, error) {
	if m, ok := provider.(ports.DistanceMatrixProvider); ok {
		results, err := m.GetDistances(ctx, origin, destinations)
		if err != nil {
			return nil, fmt.Errorf("get distances from %q: %w", origin, err)
		}
		if results == nil {
			results = make(map[string]ports.DistanceResult, len(destinations))
		}
		// Providers may drop keys they normalize differently; fill those per pair.
		for _, d := range destinations {
			if _, ok := results[d]; ok {
				continue
			}
			r, err := m.GetDistance(ctx, origin, d)
			if err != nil {
				return nil, fmt.Errorf("get distance from %q to %q: %w", origin, d, err)
			}
			results[d] = r
		}
		return results, nil
	}

	results := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, err := provider.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, fmt.Errorf("get distance from %q to %q: %w", origin, d, err)
		}
		results[d] = r
	}
	return results, nil
}
