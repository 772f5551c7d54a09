package ports

import "context"

// DistanceResult is one routed leg: meters travelled and seconds taken.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// DistanceProvider routes between two named places. The same contract
// serves the drive from the origin city and walking legs inside the
// destination; which profile is used is up to the implementation.
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}
