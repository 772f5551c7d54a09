package repositories

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

// SQLCatalogRepository implements ports.CatalogRepository on sqlite or
// postgres. Rows come back in seed order.
type SQLCatalogRepository struct{ DB *sql.DB }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db}
}

func (s *SQLCatalogRepository) ListHotels(ctx context.Context, city string) (_ []domain.HotelOption, err error) {
	defer obs.Time(ctx, "catalog.ListHotels")(&err)

	if s.DB == nil {
		return nil, errors.New("list hotels: DB is nil")
	}

	query := `
	SELECT name, tier, nightly_price, capacity, lon, lat
	FROM hotels
	WHERE city = $1
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query, strings.TrimSpace(city))
	if err != nil {
		return nil, fmt.Errorf("list hotels: query hotels table: %w", err)
	}
	defer rows.Close()

	hotels := make([]domain.HotelOption, 0, 16)
	for rows.Next() {
		var h domain.HotelOption
		if err := rows.Scan(&h.Name, &h.Tier, &h.NightlyPrice, &h.Capacity, &h.Position.Lon, &h.Position.Lat); err != nil {
			return nil, fmt.Errorf("list hotels: scan row: %w", err)
		}
		hotels = append(hotels, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hotels: row iteration: %w", err)
	}

	return hotels, nil
}

func (s *SQLCatalogRepository) ListPOIs(ctx context.Context, city string) (_ []domain.POI, err error) {
	defer obs.Time(ctx, "catalog.ListPOIs")(&err)

	if s.DB == nil {
		return nil, errors.New("list pois: DB is nil")
	}

	query := `
	SELECT name, category, ticket_price, visit_minutes, outdoor, lon, lat
	FROM pois
	WHERE city = $1
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query, strings.TrimSpace(city))
	if err != nil {
		return nil, fmt.Errorf("list pois: query pois table: %w", err)
	}
	defer rows.Close()

	pois := make([]domain.POI, 0, 32)
	for rows.Next() {
		var (
			p       domain.POI
			minutes int
		)
		if err := rows.Scan(&p.Name, &p.Category, &p.TicketPrice, &minutes, &p.Outdoor, &p.Position.Lon, &p.Position.Lat); err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}
		p.VisitDuration = time.Duration(minutes) * time.Minute
		pois = append(pois, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}

	return pois, nil
}

func (s *SQLCatalogRepository) ListRestaurants(ctx context.Context, city string) (_ []domain.Restaurant, err error) {
	defer obs.Time(ctx, "catalog.ListRestaurants")(&err)

	if s.DB == nil {
		return nil, errors.New("list restaurants: DB is nil")
	}

	query := `
	SELECT name, category, avg_cost, lon, lat
	FROM restaurants
	WHERE city = $1
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query, strings.TrimSpace(city))
	if err != nil {
		return nil, fmt.Errorf("list restaurants: query restaurants table: %w", err)
	}
	defer rows.Close()

	restaurants := make([]domain.Restaurant, 0, 32)
	for rows.Next() {
		var r domain.Restaurant
		if err := rows.Scan(&r.Name, &r.Category, &r.AvgCost, &r.Position.Lon, &r.Position.Lat); err != nil {
			return nil, fmt.Errorf("list restaurants: scan row: %w", err)
		}
		restaurants = append(restaurants, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: row iteration: %w", err)
	}

	return restaurants, nil
}
