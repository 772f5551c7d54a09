package ports

import "context"

// DistanceMatrixProvider answers one-to-many lookups in a single call.
// Day route planning checks for it and falls back to GetDistance per pair.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Result keys may be normalized; callers fall back to GetDistance for gaps.
	GetDistances(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
}
