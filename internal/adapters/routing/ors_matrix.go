package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

// Index 0 is the origin; destinations follow in order.
func newMatrixRequest(origin domain.Coordinates, targets []domain.Coordinates) matrixRequest {
	req := matrixRequest{
		Locations:    [][]float64{origin.CoordsToList()},
		Sources:      []int{0},
		Destinations: make([]int, len(targets)),
		Metrics:      []string{"distance", "duration"},
	}
	for i, c := range targets {
		req.Locations = append(req.Locations, c.CoordsToList())
		req.Destinations[i] = i + 1
	}
	return req
}

// Unroutable pairs come back as null.
type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// row maps the single source row onto the destination names.
func (mr matrixResponse) row(names []string) (map[string]ports.DistanceResult, error) {
	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf("matrix: want 1 source row, got distances=%d durations=%d", len(mr.Distances), len(mr.Durations))
	}

	meters, seconds := mr.Distances[0], mr.Durations[0]
	if len(meters) != len(names) || len(seconds) != len(names) {
		return nil, fmt.Errorf("matrix: row has %d/%d cells for %d destinations", len(meters), len(seconds), len(names))
	}

	out := make(map[string]ports.DistanceResult, len(names))
	for i, name := range names {
		if meters[i] == nil || seconds[i] == nil {
			return nil, fmt.Errorf("matrix: no route to %q", name)
		}
		out[name] = ports.DistanceResult{
			DistanceMeters:  int(math.Round(*meters[i])),
			DurationSeconds: int(math.Round(*seconds[i])),
		}
	}
	return out, nil
}

// fetchMatrixRow asks the ORS matrix endpoint for one origin against many
// destinations, in the provider's profile.
func (o *ORSProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	names []string,
	coords []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	if len(names) != len(coords) {
		return nil, fmt.Errorf("matrix: %d names for %d coordinates", len(names), len(coords))
	}
	if len(names) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	payload, err := json.Marshal(newMatrixRequest(origin, coords))
	if err != nil {
		return nil, fmt.Errorf("matrix: encode request: %w", err)
	}

	endpoint := o.baseURL + "/v2/matrix/" + o.profile
	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix: %s: %w", o.profile, err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("matrix: decode response: %w", err)
	}

	return mr.row(names)
}
