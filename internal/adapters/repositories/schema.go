package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the catalog and cache tables. The DDL sticks to types
// and syntax shared by sqlite and postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHotelsQuery := `
	CREATE TABLE IF NOT EXISTS hotels (
		city TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		tier INTEGER NOT NULL,
		nightly_price DOUBLE PRECISION NOT NULL,
		capacity INTEGER NOT NULL,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (city, position)
	);
	`

	createPOIsQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		city TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		ticket_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		visit_minutes INTEGER NOT NULL DEFAULT 0,
		outdoor BOOLEAN NOT NULL DEFAULT FALSE,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (city, position)
	);
	`

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		city TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		avg_cost DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (city, position)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		cached_at BIGINT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		place TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		cached_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination_origin
	ON route_cache(destination, origin);
	`

	statements := []string{
		createHotelsQuery,
		createPOIsQuery,
		createRestaurantsQuery,
		createRouteCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
