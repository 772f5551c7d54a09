package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	err error
}

func (s stubCatalog) ListHotels(_ context.Context, _ string) ([]domain.HotelOption, error) {
	return []domain.HotelOption{
		{Name: "Hotel Grand Place", Tier: 3, NightlyPrice: 80, Capacity: 2, Position: domain.Coordinates{Lon: 3.0635, Lat: 50.6368}},
		{Name: "Hermitage Gantois", Tier: 5, NightlyPrice: 240, Capacity: 2},
	}, s.err
}

func (s stubCatalog) ListPOIs(_ context.Context, _ string) ([]domain.POI, error) {
	return []domain.POI{
		{Name: "Belfry of the Town Hall", VisitDuration: 45 * time.Minute, Position: domain.Coordinates{Lon: 3.0708, Lat: 50.6310}},
		{Name: "Citadel of Lille", Outdoor: true, Position: domain.Coordinates{Lon: 3.0448, Lat: 50.6413}},
	}, s.err
}

func (s stubCatalog) ListRestaurants(_ context.Context, _ string) ([]domain.Restaurant, error) {
	return []domain.Restaurant{
		{Name: "Friterie Meunier", AvgCost: 6, Position: domain.Coordinates{Lon: 3.0669, Lat: 50.6347}},
		{Name: "Estaminet Chez la Vieille", AvgCost: 9, Position: domain.Coordinates{Lon: 3.0648, Lat: 50.6398}},
	}, s.err
}

type stubTrains struct{}

func (stubTrains) TrainOffers(_ context.Context, _ ports.TrainQuery) ([]domain.TransportOffer, error) {
	return []domain.TransportOffer{
		{Mode: domain.ModeTrain, Label: "TGV Paris-Lille", Price: 37.5, Duration: 62 * time.Minute},
	}, nil
}

type stubWeather struct {
	err   error
	query ports.ForecastQuery
}

func (s *stubWeather) Forecast(_ context.Context, q ports.ForecastQuery) ([]domain.DailyForecast, error) {
	s.query = q
	if s.err != nil {
		return nil, s.err
	}
	return []domain.DailyForecast{
		{Date: q.From, WeatherCode: 61, Description: "Slight rain", TempMaxC: 14, TempMinC: 8, PrecipitationMM: 3.2},
	}, nil
}

func testDeps() Deps {
	catalog := stubCatalog{}
	return Deps{
		Catalog: catalog,
		Sources: services.Sources{
			Catalog:     catalog,
			Trains:      stubTrains{},
			Destination: "Lille",
			DestinationPosition: domain.Coordinates{
				Lat: 50.62, Lon: 3.06,
			},
		},
		Options: services.DefaultPlanOptions(),
		Weather: &stubWeather{},
	}
}

const planBody = `{
	"origin_city": "Paris",
	"start_date": "2026-06-01",
	"duration_days": 2,
	"travelers": 4,
	"preferred_mode": "Train",
	"hotel_tier": 3,
	"budget_cap": 500
}`

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, NewRouter(testDeps()), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsKeptWhenWellFormed(t *testing.T) {
	h := NewRouter(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trip-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trip-42", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id\n")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "bad id\n", rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPlan(t *testing.T) {
	rec := do(t, NewRouter(testDeps()), http.MethodPost, "/plans", planBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Destination string `json:"destination"`
		EndDate     string `json:"end_date"`
		Costs       struct {
			Hotel      float64 `json:"hotel"`
			Transport  float64 `json:"transport"`
			Meals      float64 `json:"meals"`
			Estimate   float64 `json:"meals_estimate"`
			GrandTotal float64 `json:"grand_total"`
		} `json:"costs"`
		OverBudget      bool     `json:"over_budget"`
		RemainingBudget *float64 `json:"remaining_budget"`
		Transport       struct {
			Recommended string `json:"recommended"`
		} `json:"transport"`
		DayRoutes []struct {
			Day   int    `json:"day"`
			Start string `json:"start"`
			Stops []struct {
				Name string `json:"name"`
			} `json:"stops"`
		} `json:"day_routes"`
		Itinerary []struct {
			Day     int    `json:"day"`
			Session string `json:"session"`
			POI     string `json:"poi"`
		} `json:"itinerary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, "Lille", res.Destination)
	assert.Equal(t, "2026-06-02", res.EndDate)
	assert.Equal(t, 320.0, res.Costs.Hotel)
	assert.Equal(t, 150.0, res.Costs.Transport)
	assert.Equal(t, 120.0, res.Costs.Meals)
	assert.Equal(t, 120.0, res.Costs.Estimate)
	assert.Equal(t, 590.0, res.Costs.GrandTotal)
	assert.True(t, res.OverBudget)
	require.NotNil(t, res.RemainingBudget)
	assert.Equal(t, -90.0, *res.RemainingBudget)
	assert.Equal(t, "train", res.Transport.Recommended)

	require.Len(t, res.Itinerary, 4)
	assert.Equal(t, 1, res.Itinerary[0].Day)
	assert.Equal(t, "Belfry of the Town Hall", res.Itinerary[0].POI)
	assert.Equal(t, "", res.Itinerary[3].POI)

	// Day 1 visits both POIs and both restaurants, then walks back.
	require.Len(t, res.DayRoutes, 2)
	assert.Equal(t, 1, res.DayRoutes[0].Day)
	assert.Equal(t, "Hotel Grand Place", res.DayRoutes[0].Start)
	require.Len(t, res.DayRoutes[0].Stops, 5)
	assert.Equal(t, "Hotel Grand Place", res.DayRoutes[0].Stops[4].Name)
	assert.Empty(t, res.DayRoutes[1].Stops)
}

func TestPlanRejectsBadRequests(t *testing.T) {
	h := NewRouter(testDeps())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", `{"origin_city":"Paris","colour":"red"}`, "invalid json body"},
		{"two objects", planBody + planBody, "only one JSON object"},
		{"too long", strings.Replace(planBody, `"duration_days": 2`, `"duration_days": 11`, 1), "duration_days must be at most 10"},
		{"bad mode", strings.Replace(planBody, `"Train"`, `"plane"`, 1), "preferred_mode must be one of"},
		{"bad date", strings.Replace(planBody, `2026-06-01`, `01/06/2026`, 1), "start_date must be a date"},
		{"missing origin", strings.Replace(planBody, `"Paris"`, `"  "`, 1), "origin_city is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/plans", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestPlanInsufficientCatalog(t *testing.T) {
	body := strings.Replace(planBody, `"hotel_tier": 3`, `"hotel_tier": 1`, 1)

	rec := do(t, NewRouter(testDeps()), http.MethodPost, "/plans", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlanCatalogFailureIsInternal(t *testing.T) {
	deps := testDeps()
	deps.Sources.Catalog = stubCatalog{err: errors.New("db down")}

	rec := do(t, NewRouter(deps), http.MethodPost, "/plans", planBody)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestPlanMethodNotAllowed(t *testing.T) {
	rec := do(t, NewRouter(testDeps()), http.MethodGet, "/plans", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestCompareTransport(t *testing.T) {
	rec := do(t, NewRouter(testDeps()), http.MethodPost, "/transport/compare", planBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Options []struct {
			Mode            string  `json:"mode"`
			TotalCost       float64 `json:"total_cost"`
			CostPerTraveler float64 `json:"cost_per_traveler"`
			DurationMinutes int     `json:"duration_minutes"`
		} `json:"options"`
		Recommended string `json:"recommended"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Options, 1)
	assert.Equal(t, "train", res.Options[0].Mode)
	assert.Equal(t, 150.0, res.Options[0].TotalCost)
	assert.Equal(t, 37.5, res.Options[0].CostPerTraveler)
	assert.Equal(t, 62, res.Options[0].DurationMinutes)
	assert.Equal(t, "train", res.Recommended)
}

func TestCompareTransportWithoutOffers(t *testing.T) {
	deps := testDeps()
	deps.Sources.Trains = nil

	rec := do(t, NewRouter(deps), http.MethodPost, "/transport/compare", planBody)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCatalog(t *testing.T) {
	h := NewRouter(testDeps())

	rec := do(t, h, http.MethodGet, "/catalog?kind=pois", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"visit_minutes":45`)
	assert.Contains(t, rec.Body.String(), `"city":"Lille"`)
	assert.NotContains(t, rec.Body.String(), `"hotels"`)

	rec = do(t, h, http.MethodGet, "/catalog?kind=HOTELS", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hermitage Gantois")

	rec = do(t, h, http.MethodGet, "/catalog?kind=bars", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeather(t *testing.T) {
	deps := testDeps()
	weather := deps.Weather.(*stubWeather)

	rec := do(t, NewRouter(deps), http.MethodGet, "/weather?start=2026-06-01&days=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"date":"2026-06-01"`)
	assert.Contains(t, rec.Body.String(), `"description":"Slight rain"`)
	assert.Equal(t, 2, weather.query.Days)
	assert.Equal(t, 50.62, weather.query.Position.Lat)

	rec = do(t, NewRouter(deps), http.MethodGet, "/weather?days=30", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	weather.err = errors.New("open-meteo: 502")
	rec = do(t, NewRouter(deps), http.MethodGet, "/weather?start=2026-06-01", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRateLimit(t *testing.T) {
	deps := testDeps()
	deps.RateLimit = RateLimit{RequestsPerSecond: 0.001, Burst: 1}
	h := NewRouter(deps)

	first := do(t, h, http.MethodGet, "/health", "")
	second := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}
