package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRoutes struct {
	mu sync.Mutex
	m  map[string]ports.DistanceResult
}

func (c *memRoutes) GetMany(_ context.Context, origin string, dests []string) (map[string]ports.DistanceResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]ports.DistanceResult{}
	for _, d := range dests {
		if r, ok := c.m[origin+"|"+d]; ok {
			out[d] = r
		}
	}
	return out, nil
}

func (c *memRoutes) PutMany(_ context.Context, origin string, results map[string]ports.DistanceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for d, r := range results {
		c.m[origin+"|"+d] = r
	}
	return nil
}

type memGeocodes struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func (c *memGeocodes) GetMany(_ context.Context, places []string) (map[string]domain.Coordinates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]domain.Coordinates{}
	for _, p := range places {
		if v, ok := c.m[p]; ok {
			out[p] = v
		}
	}
	return out, nil
}

func (c *memGeocodes) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

type fakeORS struct {
	geocodes atomic.Int32
	matrices atomic.Int32
	lastBody matrixRequest
	profile  string
}

func (f *fakeORS) handler(t *testing.T) http.Handler {
	coords := map[string][]float64{
		"Paris": {2.35, 48.85},
		"Lille": {3.06, 50.62},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/geocode/search", func(w http.ResponseWriter, r *http.Request) {
		f.geocodes.Add(1)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "FR", r.URL.Query().Get("boundary.country"))

		c, ok := coords[r.URL.Query().Get("text")]
		if !ok {
			_, _ = w.Write([]byte(`{"features":[]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []any{map[string]any{"geometry": map[string]any{"coordinates": c}}},
		})
	})
	mux.HandleFunc("/v2/matrix/", func(w http.ResponseWriter, r *http.Request) {
		f.matrices.Add(1)
		f.profile = r.URL.Path[len("/v2/matrix/"):]
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastBody))
		_, _ = w.Write([]byte(`{"distances":[[225123.4]],"durations":[[8099.6]]}`))
	})
	return mux
}

func newTestProvider(t *testing.T, url string, opts ...ORSOption) *ORSProvider {
	t.Helper()
	client := httpx.NewClient(2 * time.Second)
	client.Backoff = time.Millisecond
	p, err := NewORSProvider("test-key", append([]ORSOption{WithBaseURL(url), WithHTTPClient(client)}, opts...)...)
	require.NoError(t, err)
	return p
}

func TestORSProviderGetDistanceUsesCaches(t *testing.T) {
	fake := &fakeORS{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	routes := &memRoutes{m: map[string]ports.DistanceResult{}}
	geocodes := &memGeocodes{m: map[string]domain.Coordinates{}}
	p := newTestProvider(t, srv.URL, WithCaches(routes, geocodes))

	ctx := context.Background()
	got, err := p.GetDistance(ctx, "  Paris ", "Lille")
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 225123, DurationSeconds: 8100}, got)
	assert.Equal(t, "driving-car", fake.profile)
	assert.Equal(t, [][]float64{{2.35, 48.85}, {3.06, 50.62}}, fake.lastBody.Locations)
	assert.Equal(t, []int{1}, fake.lastBody.Destinations)

	// Second call is served from the route cache.
	_, err = p.GetDistance(ctx, "Paris", "Lille")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.geocodes.Load())
	assert.Equal(t, int32(1), fake.matrices.Load())
	assert.Contains(t, geocodes.m, "Lille")
}

func TestORSProviderWalkingProfileScopesCache(t *testing.T) {
	fake := &fakeORS{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	routes := &memRoutes{m: map[string]ports.DistanceResult{}}
	p := newTestProvider(t, srv.URL, WithProfile(ProfileWalking), WithCaches(routes, nil))

	_, err := p.GetDistance(context.Background(), "Paris", "Lille")
	require.NoError(t, err)
	assert.Equal(t, "foot-walking", fake.profile)
	assert.Contains(t, routes.m, "foot-walking:Paris|Lille")
}

func TestORSProviderUnknownPlace(t *testing.T) {
	fake := &fakeORS{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.GetDistance(context.Background(), "Atlantis", "Lille")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geocode results")
	assert.Equal(t, int32(0), fake.matrices.Load())
}

func TestORSProviderSamePlaceIsFree(t *testing.T) {
	p := newTestProvider(t, "http://127.0.0.1:1")
	got, err := p.GetDistance(context.Background(), "Lille", " Lille")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestNewORSProviderRequiresKey(t *testing.T) {
	_, err := NewORSProvider("")
	require.Error(t, err)
}

func TestMockDistanceProvider(t *testing.T) {
	p := NewMockDistanceProvider(Symmetric([]MockPair{{From: "Paris", To: "Lille", Meters: 225000, Seconds: 8100}}))

	r, err := p.GetDistance(context.Background(), "Lille", "Paris")
	require.NoError(t, err)
	assert.Equal(t, 225000, r.DistanceMeters)

	_, err = p.GetDistance(context.Background(), "Lyon", "Lille")
	require.Error(t, err)
}

func TestMatrixRequestIndexesDestinationsAfterOrigin(t *testing.T) {
	req := newMatrixRequest(
		domain.Coordinates{Lon: 2.35, Lat: 48.85},
		[]domain.Coordinates{{Lon: 3.06, Lat: 50.63}, {Lon: 4.35, Lat: 50.85}},
	)

	assert.Equal(t, []int{0}, req.Sources)
	assert.Equal(t, []int{1, 2}, req.Destinations)
	assert.Equal(t, []float64{4.35, 50.85}, req.Locations[2])
}

func TestMatrixRowRejectsUnroutableCell(t *testing.T) {
	meters, seconds := 1200.4, 900.6
	mr := matrixResponse{
		Distances: [][]*float64{{&meters, nil}},
		Durations: [][]*float64{{&seconds, nil}},
	}

	_, err := mr.row([]string{"Grand Place", "Mont Saint-Michel"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mont Saint-Michel")

	mr.Distances[0] = mr.Distances[0][:1]
	mr.Durations[0] = mr.Durations[0][:1]
	got, err := mr.row([]string{"Grand Place"})
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 1200, DurationSeconds: 901}, got["Grand Place"])
}
