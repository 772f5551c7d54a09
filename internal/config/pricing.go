package config

import (
	"fmt"
	"os"
	"trip-planner-service/internal/adapters/trains"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"

	"gopkg.in/yaml.v3"
)

// Pricing is every tariff the planner reads from configuration.
type Pricing struct {
	PriceBands      domain.PriceBands
	CarCosts        services.CarCosts
	TrainBookingFee float64
	TrainFares      []trains.StaticFare
}

type pricingFile struct {
	MealBands       map[int]domain.PriceBand `yaml:"meal_bands"`
	Car             *services.CarCosts       `yaml:"car"`
	TrainBookingFee *float64                 `yaml:"train_booking_fee"`
	TrainFares      []trains.StaticFare      `yaml:"train_fares"`
}

// DefaultPricing is used when no pricing file is configured.
func DefaultPricing() Pricing {
	return Pricing{
		PriceBands: domain.DefaultPriceBands(),
		CarCosts:   services.DefaultCarCosts(),
		TrainFares: trains.DefaultFares(),
	}
}

// LoadPricing overlays a YAML file on the defaults. Sections missing from
// the file keep their default; meal_bands, when present, must list every tier.
func LoadPricing(path string) (Pricing, error) {
	p := DefaultPricing()
	if path == "" {
		return p, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Pricing{}, fmt.Errorf("load pricing: read %q: %w", path, err)
	}

	var f pricingFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Pricing{}, fmt.Errorf("load pricing: parse %q: %w", path, err)
	}

	if len(f.MealBands) > 0 {
		bands, err := domain.NewPriceBands(f.MealBands)
		if err != nil {
			return Pricing{}, fmt.Errorf("load pricing: %w", err)
		}
		p.PriceBands = bands
	}

	if f.Car != nil {
		c := *f.Car
		if c.FuelPricePerLiter < 0 || c.ConsumptionPer100K < 0 || c.TollPerKm < 0 || c.ParkingPerDay < 0 {
			return Pricing{}, fmt.Errorf("load pricing: car costs must not be negative")
		}
		p.CarCosts = c
	}

	if f.TrainBookingFee != nil {
		if *f.TrainBookingFee < 0 {
			return Pricing{}, fmt.Errorf("load pricing: train booking fee must not be negative")
		}
		p.TrainBookingFee = *f.TrainBookingFee
	}

	if len(f.TrainFares) > 0 {
		for _, fare := range f.TrainFares {
			if fare.Origin == "" || fare.Destination == "" || fare.PriceMin < 0 || fare.PriceMax < fare.PriceMin {
				return Pricing{}, fmt.Errorf("load pricing: invalid train fare %q -> %q", fare.Origin, fare.Destination)
			}
		}
		p.TrainFares = f.TrainFares
	}

	return p, nil
}
