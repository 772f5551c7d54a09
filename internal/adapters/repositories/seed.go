package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CatalogSeed is the on-disk shape of one destination's catalog.
type CatalogSeed struct {
	City        string           `json:"city"`
	Hotels      []HotelSeed      `json:"hotels"`
	POIs        []POISeed        `json:"pois"`
	Restaurants []RestaurantSeed `json:"restaurants"`
}

type HotelSeed struct {
	Name         string  `json:"name"`
	Tier         int     `json:"tier"`
	NightlyPrice float64 `json:"nightly_price"`
	Capacity     int     `json:"capacity"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
}

type POISeed struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	TicketPrice  float64 `json:"ticket_price"`
	VisitMinutes int     `json:"visit_minutes"`
	Outdoor      bool    `json:"outdoor"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
}

type RestaurantSeed struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	AvgCost  float64 `json:"avg_cost"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
}

// LoadCatalogSeed reads and validates a catalog file.
func LoadCatalogSeed(jsonPath string) (*CatalogSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return nil, fmt.Errorf("seed catalog: parse json: %w", err)
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}

	return &seed, nil
}

// Validate rejects rows the planner could never price.
func (c *CatalogSeed) Validate() error {
	c.City = strings.TrimSpace(c.City)
	if c.City == "" {
		return errors.New("seed catalog: city cannot be empty")
	}

	for i, h := range c.Hotels {
		if strings.TrimSpace(h.Name) == "" {
			return fmt.Errorf("seed catalog: hotel at index %d: name cannot be empty", i+1)
		}
		if h.Tier < 1 || h.Tier > 5 {
			return fmt.Errorf("seed catalog: hotel %q: tier %d out of range", h.Name, h.Tier)
		}
		if h.NightlyPrice < 0 || h.Capacity < 1 {
			return fmt.Errorf("seed catalog: hotel %q: invalid price or capacity", h.Name)
		}
	}

	for i, p := range c.POIs {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed catalog: poi at index %d: name cannot be empty", i+1)
		}
		if p.TicketPrice < 0 {
			return fmt.Errorf("seed catalog: poi %q: negative ticket price", p.Name)
		}
	}

	for i, r := range c.Restaurants {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("seed catalog: restaurant at index %d: name cannot be empty", i+1)
		}
		if r.AvgCost < 0 {
			return fmt.Errorf("seed catalog: restaurant %q: negative average cost", r.Name)
		}
	}

	return nil
}

// SeedFromJSON replaces the catalog of the file's city in one transaction.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	seed, err := LoadCatalogSeed(jsonPath)
	if err != nil {
		return err
	}
	return Seed(ctx, db, seed)
}

// Seed writes a validated catalog. Slice order becomes catalog position.
func Seed(ctx context.Context, db *sql.DB, seed *CatalogSeed) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"hotels", "pois", "restaurants"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE city = $1;", seed.City); err != nil {
			return fmt.Errorf("seed catalog: clear %s: %w", table, err)
		}
	}

	for i, h := range seed.Hotels {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO hotels (city, position, name, tier, nightly_price, capacity, lon, lat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, seed.City, i, strings.TrimSpace(h.Name), h.Tier, h.NightlyPrice, h.Capacity, h.Lon, h.Lat)
		if err != nil {
			return fmt.Errorf("seed catalog: insert hotel %q: %w", h.Name, err)
		}
	}

	for i, p := range seed.POIs {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO pois (city, position, name, category, ticket_price, visit_minutes, outdoor, lon, lat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`, seed.City, i, strings.TrimSpace(p.Name), p.Category, p.TicketPrice, p.VisitMinutes, p.Outdoor, p.Lon, p.Lat)
		if err != nil {
			return fmt.Errorf("seed catalog: insert poi %q: %w", p.Name, err)
		}
	}

	for i, r := range seed.Restaurants {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO restaurants (city, position, name, category, avg_cost, lon, lat)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, seed.City, i, strings.TrimSpace(r.Name), r.Category, r.AvgCost, r.Lon, r.Lat)
		if err != nil {
			return fmt.Errorf("seed catalog: insert restaurant %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
