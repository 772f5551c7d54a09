package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type fakeCatalog struct {
	catalogs domain.Catalogs
	err      error
	cities   atomic.Value
}

func (f *fakeCatalog) ListHotels(_ context.Context, city string) ([]domain.HotelOption, error) {
	f.cities.Store(city)
	return f.catalogs.Hotels, f.err
}

func (f *fakeCatalog) ListPOIs(_ context.Context, _ string) ([]domain.POI, error) {
	return f.catalogs.POIs, nil
}

func (f *fakeCatalog) ListRestaurants(_ context.Context, _ string) ([]domain.Restaurant, error) {
	return f.catalogs.Restaurants, nil
}

type fakeTrains struct {
	offers []domain.TransportOffer
	err    error
	calls  atomic.Int32
}

func (f *fakeTrains) TrainOffers(_ context.Context, _ ports.TrainQuery) ([]domain.TransportOffer, error) {
	f.calls.Add(1)
	return f.offers, f.err
}

type fakeRoutes struct {
	result ports.DistanceResult
	err    error
}

func (f fakeRoutes) GetDistance(_ context.Context, _, _ string) (ports.DistanceResult, error) {
	return f.result, f.err
}

type fakeWeather struct {
	forecast []domain.DailyForecast
	err      error
}

func (f fakeWeather) Forecast(_ context.Context, _ ports.ForecastQuery) ([]domain.DailyForecast, error) {
	return f.forecast, f.err
}

func testSources() (Sources, *fakeTrains) {
	c := lilleCatalogs()
	trains := &fakeTrains{offers: c.TrainOffers}
	return Sources{
		Catalog:     &fakeCatalog{catalogs: c},
		Trains:      trains,
		Routes:      fakeRoutes{result: ports.DistanceResult{DistanceMeters: 225000, DurationSeconds: 8100}},
		Weather:     fakeWeather{},
		Destination: "Lille",
		CarCosts:    DefaultCarCosts(),
	}, trains
}

func TestPlanTripFromSources(t *testing.T) {
	src, _ := testSources()

	plan, err := PlanTripFromSources(context.Background(), lilleRequest(), src, DefaultPlanOptions())
	if err != nil {
		t.Fatalf("PlanTripFromSources: %v", err)
	}
	if len(plan.Transport.Options) != 2 {
		t.Fatalf("options = %d, want train and car", len(plan.Transport.Options))
	}
	if got := src.Catalog.(*fakeCatalog).cities.Load(); got != "Lille" {
		t.Fatalf("catalog queried for %v, want Lille", got)
	}
}

func TestPlanTripFromSourcesDropsFailedMode(t *testing.T) {
	src, trains := testSources()
	trains.err = errors.New("sncf: 503")

	plan, err := PlanTripFromSources(context.Background(), lilleRequest(), src, DefaultPlanOptions())
	if err != nil {
		t.Fatalf("PlanTripFromSources: %v", err)
	}
	if len(plan.Transport.Options) != 1 || plan.Transport.Recommended != domain.ModeCar {
		t.Fatalf("transport = %+v, want car only", plan.Transport)
	}
}

func TestPlanTripFromSourcesNoTransport(t *testing.T) {
	src, trains := testSources()
	trains.err = errors.New("sncf: 503")
	src.Routes = fakeRoutes{err: errors.New("ors: timeout")}

	_, err := PlanTripFromSources(context.Background(), lilleRequest(), src, DefaultPlanOptions())
	if !errors.Is(err, domain.ErrNoTransportAvailable) {
		t.Fatalf("err = %v, want ErrNoTransportAvailable", err)
	}
}

func TestPlanTripFromSourcesCatalogFailure(t *testing.T) {
	src, _ := testSources()
	src.Catalog = &fakeCatalog{catalogs: lilleCatalogs(), err: errors.New("db down")}

	if _, err := PlanTripFromSources(context.Background(), lilleRequest(), src, DefaultPlanOptions()); err == nil {
		t.Fatal("expected catalog error")
	}
}

func TestPlanTripFromSourcesValidatesFirst(t *testing.T) {
	src, trains := testSources()
	req := lilleRequest()
	req.DurationDays = 11

	_, err := PlanTripFromSources(context.Background(), req, src, DefaultPlanOptions())
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
	if trains.calls.Load() != 0 {
		t.Fatal("providers were called for an invalid request")
	}
}

func TestCompareTransportFromSources(t *testing.T) {
	src, _ := testSources()

	cmp, err := CompareTransportFromSources(context.Background(), lilleRequest(), src)
	if err != nil {
		t.Fatalf("CompareTransportFromSources: %v", err)
	}
	// Train 4 x 37.5 = 150; car 2 x 15 parking + 47.25 fuel + 42.75 tolls = 120.
	if cmp.Recommended != domain.ModeCar {
		t.Fatalf("recommended = %q, want car", cmp.Recommended)
	}
	car, _ := cmp.Chosen()
	if car.TotalCost != 120 {
		t.Fatalf("car total = %v, want 120", car.TotalCost)
	}
}
