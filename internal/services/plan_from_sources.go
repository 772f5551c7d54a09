package services

import (
	"context"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the number of upstream calls in flight per plan.
const maxConcurrentFetches = 4

// Sources are the collaborators that supply catalogs and offers.
// Trains, Routes, Weather and Walking are optional.
type Sources struct {
	Catalog ports.CatalogRepository
	Trains  ports.TrainOfferProvider
	Routes  ports.DistanceProvider
	Weather ports.WeatherProvider
	// Orders each day's stops. When nil, catalog positions are used.
	Walking ports.DistanceProvider

	Destination         string
	DestinationPosition domain.Coordinates
	CarCosts            CarCosts
}

// GatherCatalogs fetches every input of a planning call concurrently.
//
// Catalog failures abort. Provider failures for one transport mode or for
// the forecast are logged and that input is left empty, so the engine can
// still decide with what is left.
func GatherCatalogs(ctx context.Context, req domain.TripRequest, src Sources) (_ domain.Catalogs, err error) {
	defer obs.Time(ctx, "plan.GatherCatalogs")(&err)

	if src.Catalog == nil {
		return domain.Catalogs{}, fmt.Errorf("gather catalogs: catalog repository is nil")
	}
	city := strings.TrimSpace(src.Destination)
	if city == "" {
		return domain.Catalogs{}, fmt.Errorf("gather catalogs: destination must be non-empty")
	}

	var out domain.Catalogs

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	g.Go(func() error {
		hotels, err := src.Catalog.ListHotels(gctx, city)
		if err != nil {
			return fmt.Errorf("gather catalogs: list hotels: %w", err)
		}
		out.Hotels = hotels
		return nil
	})
	g.Go(func() error {
		pois, err := src.Catalog.ListPOIs(gctx, city)
		if err != nil {
			return fmt.Errorf("gather catalogs: list pois: %w", err)
		}
		out.POIs = pois
		return nil
	})
	g.Go(func() error {
		restaurants, err := src.Catalog.ListRestaurants(gctx, city)
		if err != nil {
			return fmt.Errorf("gather catalogs: list restaurants: %w", err)
		}
		out.Restaurants = restaurants
		return nil
	})
	g.Go(func() error {
		out.TrainOffers = fetchTrainOffers(gctx, req, src)
		return nil
	})
	g.Go(func() error {
		out.CarOffers = fetchCarOffers(gctx, req, src)
		return nil
	})
	g.Go(func() error {
		out.Forecast = fetchForecast(gctx, req, src)
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Catalogs{}, err
	}

	return out, nil
}

// GatherOffers fetches only the transport offers.
func GatherOffers(ctx context.Context, req domain.TripRequest, src Sources) (train, car []domain.TransportOffer) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		train = fetchTrainOffers(gctx, req, src)
		return nil
	})
	g.Go(func() error {
		car = fetchCarOffers(gctx, req, src)
		return nil
	})
	_ = g.Wait()

	return train, car
}

// PlanTripFromSources validates the request, gathers its inputs and runs the
// planning engine on that snapshot.
func PlanTripFromSources(
	ctx context.Context,
	req domain.TripRequest,
	src Sources,
	opts PlanOptions,
) (*domain.TripPlan, error) {
	// Fail fast before any upstream call.
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip from sources: %w", err)
	}

	catalogs, err := GatherCatalogs(ctx, req, src)
	if err != nil {
		return nil, fmt.Errorf("plan trip from sources: %w", err)
	}

	plan, err := PlanTrip(req, catalogs, opts)
	if err != nil {
		return nil, fmt.Errorf("plan trip from sources: %w", err)
	}

	plan.DayRoutes = dayRoutes(ctx, plan, src)

	return plan, nil
}

// dayRoutes never fails the plan: routes are left out when they cannot be built.
func dayRoutes(ctx context.Context, plan *domain.TripPlan, src Sources) []domain.DayRoute {
	provider := src.Walking
	if provider == nil {
		positions := PositionsFromPlan(plan)
		if len(positions) == 0 {
			return nil
		}
		provider = NewStraightLineDistances(positions)
	}

	routes, err := PlanDayRoutes(ctx, plan, provider)
	if err != nil {
		zap.L().Warn("day routes unavailable",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
		return nil
	}
	return routes
}

// CompareTransportFromSources fetches offers and runs the comparator alone.
func CompareTransportFromSources(
	ctx context.Context,
	req domain.TripRequest,
	src Sources,
) (domain.TransportComparison, error) {
	if err := req.Validate(); err != nil {
		return domain.TransportComparison{}, fmt.Errorf("compare transport from sources: %w", err)
	}

	train, car := GatherOffers(ctx, req, src)
	cmp, err := CompareTransport(req.Travelers, req.PreferredMode, train, car)
	if err != nil {
		return domain.TransportComparison{}, fmt.Errorf("compare transport from sources: %w", err)
	}

	return roundComparison(cmp), nil
}

func fetchTrainOffers(ctx context.Context, req domain.TripRequest, src Sources) []domain.TransportOffer {
	if src.Trains == nil || strings.TrimSpace(req.OriginCity) == "" {
		return nil
	}

	offers, err := src.Trains.TrainOffers(ctx, ports.TrainQuery{
		Origin:      req.OriginCity,
		Destination: src.Destination,
		DepartOn:    req.StartDate,
		ReturnOn:    req.EndDate(),
		Travelers:   req.Travelers,
	})
	if err != nil {
		zap.L().Warn("train offers unavailable",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("origin", req.OriginCity),
			zap.Error(err),
		)
		return nil
	}

	return offers
}

func fetchCarOffers(ctx context.Context, req domain.TripRequest, src Sources) []domain.TransportOffer {
	if src.Routes == nil || strings.TrimSpace(req.OriginCity) == "" {
		return nil
	}

	route, err := src.Routes.GetDistance(ctx, req.OriginCity, src.Destination)
	if err != nil {
		zap.L().Warn("car route unavailable",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("origin", req.OriginCity),
			zap.Error(err),
		)
		return nil
	}

	offer, err := EstimateCarOffer(route, req.DurationDays, src.CarCosts)
	if err != nil {
		zap.L().Warn("car offer estimate failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
		return nil
	}

	return []domain.TransportOffer{offer}
}

func fetchForecast(ctx context.Context, req domain.TripRequest, src Sources) []domain.DailyForecast {
	if src.Weather == nil {
		return nil
	}

	forecast, err := src.Weather.Forecast(ctx, ports.ForecastQuery{
		Position: src.DestinationPosition,
		From:     req.StartDate,
		Days:     req.DurationDays,
	})
	if err != nil {
		zap.L().Warn("forecast unavailable",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
		return nil
	}

	return forecast
}
