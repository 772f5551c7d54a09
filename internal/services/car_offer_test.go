package services

import (
	"math"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

func TestEstimateCarOffer(t *testing.T) {
	route := ports.DistanceResult{DistanceMeters: 225_000, DurationSeconds: 8100}

	offer, err := EstimateCarOffer(route, 3, DefaultCarCosts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offer.Mode != domain.ModeCar {
		t.Fatalf("mode = %q, want car", offer.Mode)
	}
	if offer.Price != 45 {
		t.Fatalf("parking = %v, want 45", offer.Price)
	}
	// 450 km round trip: 27 L x 1.75
	if math.Abs(offer.Fuel-47.25) > 1e-9 {
		t.Fatalf("fuel = %v, want 47.25", offer.Fuel)
	}
	if math.Abs(offer.Tolls-42.75) > 1e-9 {
		t.Fatalf("tolls = %v, want 42.75", offer.Tolls)
	}
	if offer.Duration != 4*time.Hour+30*time.Minute {
		t.Fatalf("duration = %v, want 4h30m", offer.Duration)
	}
}

func TestEstimateCarOfferRejectsEmptyRoute(t *testing.T) {
	if _, err := EstimateCarOffer(ports.DistanceResult{}, 2, DefaultCarCosts()); err == nil {
		t.Fatal("expected error for zero distance")
	}
}
