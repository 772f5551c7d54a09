package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// RouteCache stores origin -> destination driving results keyed by
// normalized place names.
type RouteCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]DistanceResult) error
}

// GeocodeCache stores place name -> coordinates.
type GeocodeCache interface {
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
