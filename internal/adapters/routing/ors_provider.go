package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

const (
	DefaultORSBaseURL = "https://api.openrouteservice.org"
	ProfileDriving    = "driving-car"
	ProfileWalking    = "foot-walking"
)

// ORSProvider implements DistanceMatrixProvider using OpenRouteService.
//
// It coordinates:
//   - Place name normalization
//   - Geocode caching
//   - Route caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	client       *httpx.Client
	apiKey       string
	baseURL      string
	profile      string
	country      string
	routeCache   ports.RouteCache
	geocodeCache ports.GeocodeCache
}

type ORSOption func(*ORSProvider)

func WithBaseURL(u string) ORSOption {
	return func(o *ORSProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithProfile selects the ORS routing profile, driving by default.
func WithProfile(p string) ORSOption {
	return func(o *ORSProvider) { o.profile = p }
}

// WithCountry restricts geocoding to an ISO country code.
func WithCountry(code string) ORSOption {
	return func(o *ORSProvider) { o.country = code }
}

func WithCaches(routes ports.RouteCache, geocodes ports.GeocodeCache) ORSOption {
	return func(o *ORSProvider) {
		o.routeCache = routes
		o.geocodeCache = geocodes
	}
}

func WithHTTPClient(c *httpx.Client) ORSOption {
	return func(o *ORSProvider) { o.client = c }
}

func NewORSProvider(apiKey string, opts ...ORSOption) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSProvider{
		client:  httpx.NewClient(10 * time.Second),
		apiKey:  apiKey,
		baseURL: DefaultORSBaseURL,
		profile: ProfileDriving,
		country: "FR",
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cacheOrigin scopes cache keys by profile so walking and driving legs
// never collide.
func (o *ORSProvider) cacheOrigin(origin string) string {
	if o.profile == ProfileDriving {
		return origin
	}
	return o.profile + ":" + origin
}

// Delegate to batched path to reuse caching and matrix logic.
func (o *ORSProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	normOrigin := normalize(origin)
	normDestination := normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.DistanceResult{}, errors.New("get ORS distance: origin and destination must be non-empty")
	}
	if normOrigin == normDestination {
		return ports.DistanceResult{}, nil
	}

	results, err := o.GetDistances(ctx, normOrigin, []string{normDestination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distances %q -> %q: %w",
			normOrigin, normDestination, err,
		)
	}

	result, ok := results[normDestination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %q -> %q", origin, destination)
	}

	return result, nil
}

// Compute distances from a single origin to many destinations.
func (o *ORSProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	normOrigin := normalize(origin)
	if normOrigin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]string, 0, len(destinations))
	for _, d := range destinations {
		nd := normalize(d)
		if nd == "" || nd == normOrigin {
			continue
		}
		if _, ok := seen[nd]; ok {
			continue
		}
		seen[nd] = struct{}{}
		destList = append(destList, nd)
	}

	if len(destList) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	cacheKey := o.cacheOrigin(normOrigin)
	routeHits := make(map[string]ports.DistanceResult)
	// Check the route cache before issuing external API calls.
	if o.routeCache != nil {
		routeHits, err = o.routeCache.GetMany(ctx, cacheKey, destList)
		if err != nil {
			return nil, fmt.Errorf("ORS get route cache: %w", err)
		}
	}

	routeMisses := make([]string, 0, len(destList))
	for _, d := range destList {
		if _, ok := routeHits[d]; !ok {
			routeMisses = append(routeMisses, d)
		}
	}

	if len(routeMisses) == 0 {
		return routeHits, nil
	}

	needed := make([]string, 0, 1+len(routeMisses))
	needed = append(needed, normOrigin)
	needed = append(needed, routeMisses...)

	coords, err := o.Geocode(ctx, needed)
	if err != nil {
		return nil, fmt.Errorf("retrieving coordinates: %w", err)
	}

	originCoord, ok := coords[normOrigin]
	if !ok {
		return nil, fmt.Errorf("missing coordinate for origin %q", normOrigin)
	}

	destinationCoords := make([]domain.Coordinates, 0, len(routeMisses))
	for _, d := range routeMisses {
		coord, ok := coords[d]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for destination %q", d)
		}
		destinationCoords = append(destinationCoords, coord)
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, originCoord, routeMisses, destinationCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	missing := make([]string, 0)
	for _, d := range routeMisses {
		if _, ok := fetched[d]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"ORS matrix service did not return the following destinations: %s",
			strings.Join(missing, ", "),
		)
	}

	if o.routeCache != nil {
		if err := o.routeCache.PutMany(ctx, cacheKey, fetched); err != nil {
			zap.L().Warn("route cache write failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Error(err),
			)
		}
	}

	out := make(map[string]ports.DistanceResult, len(routeHits)+len(fetched))
	for k, v := range routeHits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}

	return out, nil
}

// Geocode resolves place names through the cache first, then ORS.
func (o *ORSProvider) Geocode(ctx context.Context, places []string) (map[string]domain.Coordinates, error) {
	hits := make(map[string]domain.Coordinates)
	if o.geocodeCache != nil {
		var err error
		hits, err = o.geocodeCache.GetMany(ctx, places)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(places))
	for _, p := range places {
		if _, ok := hits[p]; !ok {
			misses = append(misses, p)
		}
	}

	fresh := make(map[string]domain.Coordinates)
	if len(misses) > 0 {
		var err error
		fresh, err = o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, err
		}
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			zap.L().Warn("geocode cache write failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Error(err),
			)
		}
	}

	out := make(map[string]domain.Coordinates, len(hits)+len(fresh))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fresh {
		out[k] = v
	}
	return out, nil
}
