package weather

import (
	"context"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes forecasts in memory, one hour by default.
type CachedProvider struct {
	next  ports.WeatherProvider
	cache *cache.Cache
}

func NewCachedProvider(next ports.WeatherProvider, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedProvider{next: next, cache: cache.New(ttl, 10*time.Minute)}
}

func cacheKey(q ports.ForecastQuery) string {
	return fmt.Sprintf("%.4f,%.4f|%s|%d", q.Position.Lat, q.Position.Lon, q.From.Format("2006-01-02"), q.Days)
}

func (c *CachedProvider) Forecast(ctx context.Context, q ports.ForecastQuery) ([]domain.DailyForecast, error) {
	key := cacheKey(q)
	if v, ok := c.cache.Get(key); ok {
		return clone(v.([]domain.DailyForecast)), nil
	}

	forecast, err := c.next.Forecast(ctx, q)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, clone(forecast), cache.DefaultExpiration)
	return forecast, nil
}

func clone(in []domain.DailyForecast) []domain.DailyForecast {
	out := make([]domain.DailyForecast, len(in))
	copy(out, in)
	return out
}
