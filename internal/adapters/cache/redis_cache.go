package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	routeKeyPrefix   = "route:"
	geocodeKeyPrefix = "geocode:"
)

// RedisCache implements both the route and geocode caches on one Redis
// client so several server instances share upstream results. Expiry is
// left to Redis.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// RedisRoutes adapts the cache to ports.RouteCache.
type RedisRoutes struct{ *RedisCache }

// RedisGeocodes adapts the cache to ports.GeocodeCache.
type RedisGeocodes struct{ *RedisCache }

func (c *RedisCache) Routes() RedisRoutes     { return RedisRoutes{c} }
func (c *RedisCache) Geocodes() RedisGeocodes { return RedisGeocodes{c} }

type redisRoute struct {
	Meters  int `json:"m"`
	Seconds int `json:"s"`
}

func routeKey(origin, destination string) string {
	return routeKeyPrefix + origin + "|" + destination
}

func (c RedisRoutes) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "route.redis.GetMany")(&err)

	if origin == "" {
		return nil, errors.New("get route cache: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	keys := make([]string, len(uniq))
	for i, d := range uniq {
		keys[i] = routeKey(origin, d)
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get route cache: mget: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var r redisRoute
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			// A corrupt entry is a miss; the next put overwrites it.
			continue
		}
		out[uniq[i]] = ports.DistanceResult{DistanceMeters: r.Meters, DurationSeconds: r.Seconds}
	}

	return out, nil
}

func (c RedisRoutes) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if origin == "" {
		return errors.New("insert route cache: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for dest, r := range results {
		b, err := json.Marshal(redisRoute{Meters: r.DistanceMeters, Seconds: r.DurationSeconds})
		if err != nil {
			return fmt.Errorf("insert route cache dest=%q: %w", dest, err)
		}
		pipe.Set(ctx, routeKey(origin, dest), b, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert route cache: exec pipeline: %w", err)
	}
	return nil
}

func (c RedisGeocodes) GetMany(ctx context.Context, places []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	uniq := uniqueKeys(places)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, p := range uniq {
		keys[i] = geocodeKeyPrefix + p
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var coords domain.Coordinates
		if err := json.Unmarshal([]byte(s), &coords); err != nil {
			continue
		}
		out[uniq[i]] = coords
	}

	return out, nil
}

func (c RedisGeocodes) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if len(results) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for place, coords := range results {
		b, err := json.Marshal(coords)
		if err != nil {
			return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+place, b, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: exec pipeline: %w", err)
	}
	return nil
}
