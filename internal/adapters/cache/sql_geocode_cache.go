package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLGeocodeCache is a SQL-backed cache mapping place names to coordinates.
type SQLGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration
	now func() time.Time
}

func NewSQLGeocodeCache(db *sql.DB, ttl time.Duration) *SQLGeocodeCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLGeocodeCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch cached coordinates for the given places.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(places)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	args := make([]any, 0, 1+len(uniq))
	args = append(args, s.now().Add(-s.TTL).Unix())
	for _, p := range uniq {
		args = append(args, p)
	}

	q := fmt.Sprintf(`
	SELECT place, lon, lat
	FROM geocode_cache
	WHERE cached_at >= $1
		AND place IN (%s);
	`, placeholders(2, len(uniq)))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var place string
		var lon, lat float64
		if err := rows.Scan(&place, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[place] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store coordinates for many places.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (place, lon, lat, cached_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (place) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		cached_at = EXCLUDED.cached_at;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	cachedAt := s.now().Unix()
	for place, c := range results {
		if strings.TrimSpace(place) == "" {
			return fmt.Errorf("insert geocode cache: empty place key")
		}
		if _, err := stmt.ExecContext(ctx, place, c.Lon, c.Lat, cachedAt); err != nil {
			return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
