package ports

import (
	"context"
	"time"
	"trip-planner-service/internal/domain"
)

type ForecastQuery struct {
	Position domain.Coordinates
	From     time.Time
	Days     int
}

// WeatherProvider returns one forecast per day, in date order. Days the
// provider cannot cover are omitted.
type WeatherProvider interface {
	Forecast(ctx context.Context, q ForecastQuery) ([]domain.DailyForecast, error)
}
