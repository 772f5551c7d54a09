package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// SQLRouteCache is a SQL-backed cache for origin->destination driving results.
// It works on sqlite and postgres alike. Rows older than TTL are misses.
type SQLRouteCache struct {
	DB  *sql.DB
	TTL time.Duration
	now func() time.Time
}

func NewSQLRouteCache(db *sql.DB, ttl time.Duration) *SQLRouteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLRouteCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch cached routes for one origin and multiple destinations.
func (s *SQLRouteCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "route.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get route cache: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	args := make([]any, 0, 2+len(uniq))
	args = append(args, origin, s.now().Add(-s.TTL).Unix())
	for _, d := range uniq {
		args = append(args, d)
	}

	// Only the placeholder list is interpolated; every value stays bound.
	q := fmt.Sprintf(`
	SELECT destination, distance_meters, duration_seconds
	FROM route_cache
	WHERE origin = $1
		AND cached_at >= $2
		AND destination IN (%s);
	`, placeholders(3, len(uniq)))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.DistanceResult, len(uniq))
	for rows.Next() {
		var dest string
		var meters, seconds int
		if err := rows.Scan(&dest, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get route cache: scan rows: %w", err)
		}
		out[dest] = ports.DistanceResult{
			DistanceMeters:  meters,
			DurationSeconds: seconds,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get route cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached routes for a single origin.
func (s *SQLRouteCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert route cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert route cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_cache (origin, destination, distance_meters, duration_seconds, cached_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		cached_at = EXCLUDED.cached_at;
	`)
	if err != nil {
		return fmt.Errorf("insert route cache: db prepare: %w", err)
	}
	defer stmt.Close()

	cachedAt := s.now().Unix()
	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert route cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMeters, r.DurationSeconds, cachedAt); err != nil {
			return fmt.Errorf("insert route cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert route cache commit: %w", err)
	}

	return nil
}
