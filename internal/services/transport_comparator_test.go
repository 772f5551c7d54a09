package services

import (
	"errors"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
)

func TestCompareTransportPicksCheaperMode(t *testing.T) {
	train := []domain.TransportOffer{
		{Mode: domain.ModeTrain, Label: "TGV", Price: 60, Duration: 2 * time.Hour},
		{Mode: domain.ModeTrain, Label: "OUIGO", Price: 25, Duration: 3 * time.Hour},
	}
	car := []domain.TransportOffer{
		{Mode: domain.ModeCar, Price: 30, Fuel: 40, Tolls: 30, Duration: 5 * time.Hour},
	}

	cmp, err := CompareTransport(2, domain.ModeCar, train, car)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cmp.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(cmp.Options))
	}
	if cmp.Options[0].Offer.Label != "OUIGO" {
		t.Fatalf("cheapest train = %q, want OUIGO", cmp.Options[0].Offer.Label)
	}
	if cmp.Options[0].TotalCost != 50 || cmp.Options[0].CostPerTraveler != 25 {
		t.Fatalf("train row = %+v", cmp.Options[0])
	}
	if cmp.Options[1].TotalCost != 100 || cmp.Options[1].CostPerTraveler != 50 {
		t.Fatalf("car row = %+v", cmp.Options[1])
	}
	if cmp.Recommended != domain.ModeTrain {
		t.Fatalf("recommended = %q, want train", cmp.Recommended)
	}
}

func TestCompareTransportTieGoesToPreferredMode(t *testing.T) {
	train := []domain.TransportOffer{{Mode: domain.ModeTrain, Price: 50}}
	car := []domain.TransportOffer{{Mode: domain.ModeCar, Price: 100}}

	for _, preferred := range []domain.TransportMode{domain.ModeTrain, domain.ModeCar} {
		cmp, err := CompareTransport(2, preferred, train, car)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmp.Recommended != preferred {
			t.Fatalf("tie with preferred %q recommended %q", preferred, cmp.Recommended)
		}
	}
}

func TestCompareTransportMissingOneMode(t *testing.T) {
	car := []domain.TransportOffer{{Mode: domain.ModeCar, Price: 100}}

	cmp, err := CompareTransport(3, domain.ModeTrain, nil, car)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Options) != 1 || cmp.Recommended != domain.ModeCar {
		t.Fatalf("comparison = %+v, want car only", cmp)
	}
}

func TestCompareTransportNoOffers(t *testing.T) {
	_, err := CompareTransport(3, domain.ModeTrain, nil, nil)
	if !errors.Is(err, domain.ErrNoTransportAvailable) {
		t.Fatalf("err = %v, want ErrNoTransportAvailable", err)
	}
}

func TestCompareTransportIsMonotonicInTravelers(t *testing.T) {
	train := []domain.TransportOffer{{Mode: domain.ModeTrain, Price: 35}}
	car := []domain.TransportOffer{{Mode: domain.ModeCar, Price: 45, Fuel: 50, Tolls: 40}}

	sawCar := false
	flipped := false
	for travelers := domain.MinTravelers; travelers <= domain.MaxTravelers; travelers++ {
		cmp, err := CompareTransport(travelers, domain.ModeTrain, train, car)
		if err != nil {
			t.Fatalf("travelers=%d: unexpected error: %v", travelers, err)
		}

		switch cmp.Recommended {
		case domain.ModeCar:
			if !sawCar && travelers > 1 {
				flipped = true
			}
			sawCar = true
		case domain.ModeTrain:
			if sawCar {
				t.Fatalf("recommendation flipped back to train at %d travelers", travelers)
			}
		}
	}

	if !flipped {
		t.Fatal("expected recommendation to flip from train to car")
	}
}

func TestCompareTransportIgnoresOffersOfOtherMode(t *testing.T) {
	train := []domain.TransportOffer{{Mode: domain.ModeCar, Price: 1}}

	_, err := CompareTransport(1, domain.ModeTrain, train, nil)
	if !errors.Is(err, domain.ErrNoTransportAvailable) {
		t.Fatalf("err = %v, want ErrNoTransportAvailable", err)
	}
}
