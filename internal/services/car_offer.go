package services

import (
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// CarCosts are the unit prices used to turn a driving route into an offer.
type CarCosts struct {
	FuelPricePerLiter  float64 `yaml:"fuel_price_per_liter"`
	ConsumptionPer100K float64 `yaml:"consumption_l_per_100km"`
	TollPerKm          float64 `yaml:"toll_per_km"`
	ParkingPerDay      float64 `yaml:"parking_per_day"`
}

// DefaultCarCosts are French motorway averages in EUR.
func DefaultCarCosts() CarCosts {
	return CarCosts{
		FuelPricePerLiter:  1.75,
		ConsumptionPer100K: 6.0,
		TollPerKm:          0.095,
		ParkingPerDay:      15,
	}
}

// EstimateCarOffer prices a round trip over a one-way route.
//
// Fuel and tolls are paid both ways; parking is charged per trip day and
// becomes the flat price shared by the group.
func EstimateCarOffer(route ports.DistanceResult, days int, costs CarCosts) (domain.TransportOffer, error) {
	if route.DistanceMeters <= 0 {
		return domain.TransportOffer{}, errors.New("estimate car offer: route distance must be positive")
	}
	if days < 1 {
		return domain.TransportOffer{}, fmt.Errorf("estimate car offer: %w: days must be at least 1, got %d", domain.ErrInvalidRequest, days)
	}

	km := 2 * float64(route.DistanceMeters) / 1000
	liters := km / 100 * costs.ConsumptionPer100K

	return domain.TransportOffer{
		Mode:     domain.ModeCar,
		Label:    fmt.Sprintf("Car, %.0f km round trip", km),
		Price:    costs.ParkingPerDay * float64(days),
		Duration: 2 * time.Duration(route.DurationSeconds) * time.Second,
		Fuel:     liters * costs.FuelPricePerLiter,
		Tolls:    km * costs.TollPerKm,
	}, nil
}
