package services

import (
	"errors"
	"math"
	"testing"
	"trip-planner-service/internal/domain"
)

func TestRoomsNeeded(t *testing.T) {
	tests := []struct {
		travelers, capacity, want int
	}{
		{1, 2, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 4, 2},
		{20, 3, 7},
		{0, 2, 0},
		{3, 0, 0},
	}

	for _, tc := range tests {
		if got := RoomsNeeded(tc.travelers, tc.capacity); got != tc.want {
			t.Errorf("RoomsNeeded(%d, %d) = %d, want %d", tc.travelers, tc.capacity, got, tc.want)
		}
	}
}

func TestQuoteHotelPicksCheapestOfTier(t *testing.T) {
	req := domain.TripRequest{DurationDays: 2, Travelers: 4, HotelTier: 3}
	hotels := []domain.HotelOption{
		{Name: "Two star", Tier: 2, NightlyPrice: 40, Capacity: 2},
		{Name: "Grand", Tier: 3, NightlyPrice: 90, Capacity: 2},
		{Name: "Family", Tier: 3, NightlyPrice: 150, Capacity: 4},
		{Name: "Broken", Tier: 3, NightlyPrice: 10, Capacity: 0},
	}

	q, err := QuoteHotel(req, hotels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Family: 1 room x 150 x 2 = 300 beats Grand: 2 rooms x 90 x 2 = 360.
	if q.Hotel.Name != "Family" {
		t.Fatalf("hotel = %q, want Family", q.Hotel.Name)
	}
	if q.Rooms != 1 || q.Cost != 300 {
		t.Fatalf("rooms=%d cost=%v, want 1 and 300", q.Rooms, q.Cost)
	}

	cost, err := HotelCost(req, hotels)
	if err != nil || cost != q.Cost {
		t.Fatalf("HotelCost = %v, %v; want %v", cost, err, q.Cost)
	}
}

func TestQuoteHotelTwoRoomsTwoNights(t *testing.T) {
	req := domain.TripRequest{DurationDays: 2, Travelers: 4, HotelTier: 3}
	hotels := []domain.HotelOption{{Name: "H", Tier: 3, NightlyPrice: 80, Capacity: 2}}

	q, err := QuoteHotel(req, hotels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Rooms != 2 || q.Cost != 320 {
		t.Fatalf("rooms=%d cost=%v, want 2 and 320", q.Rooms, q.Cost)
	}
}

func TestQuoteHotelTieKeepsCatalogOrder(t *testing.T) {
	req := domain.TripRequest{DurationDays: 1, Travelers: 2, HotelTier: 1}
	hotels := []domain.HotelOption{
		{Name: "First", Tier: 1, NightlyPrice: 50, Capacity: 2},
		{Name: "Second", Tier: 1, NightlyPrice: 50, Capacity: 2},
	}

	q, err := QuoteHotel(req, hotels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Hotel.Name != "First" {
		t.Fatalf("hotel = %q, want First", q.Hotel.Name)
	}
}

func TestQuoteHotelErrors(t *testing.T) {
	hotels := []domain.HotelOption{{Name: "H", Tier: 3, NightlyPrice: 80, Capacity: 2}}

	tests := []struct {
		name string
		req  domain.TripRequest
		want error
	}{
		{"zero duration", domain.TripRequest{DurationDays: 0, Travelers: 1, HotelTier: 3}, domain.ErrInvalidRequest},
		{"missing tier", domain.TripRequest{DurationDays: 1, Travelers: 1, HotelTier: 5}, domain.ErrInsufficientCatalog},
	}

	for _, tc := range tests {
		if _, err := QuoteHotel(tc.req, hotels); !errors.Is(err, tc.want) {
			t.Errorf("%s: QuoteHotel err = %v, want %v", tc.name, err, tc.want)
		}
		if _, err := HotelCost(tc.req, hotels); !errors.Is(err, tc.want) {
			t.Errorf("%s: HotelCost err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestAverageMealPriceUsesTierBand(t *testing.T) {
	restaurants := []domain.Restaurant{
		{Name: "Friterie", AvgCost: 8},
		{Name: "Estaminet", AvgCost: 18},
		{Name: "Brasserie", AvgCost: 22},
		{Name: "Gastro", AvgCost: 90},
	}

	avg, err := AverageMealPrice(3, restaurants, domain.DefaultPriceBands())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 20 {
		t.Fatalf("avg = %v, want 20", avg)
	}
}

func TestAverageMealPriceFallsBackToWholeCatalog(t *testing.T) {
	restaurants := []domain.Restaurant{
		{Name: "A", AvgCost: 5},
		{Name: "B", AvgCost: 7},
	}

	avg, err := AverageMealPrice(5, restaurants, domain.DefaultPriceBands())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 6 {
		t.Fatalf("avg = %v, want 6", avg)
	}
}

func TestMealCost(t *testing.T) {
	req := domain.TripRequest{DurationDays: 3, Travelers: 2, HotelTier: 3}
	restaurants := []domain.Restaurant{{Name: "A", AvgCost: 15}, {Name: "B", AvgCost: 20}}

	cost, err := MealCost(req, restaurants, domain.DefaultPriceBands())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3 days x 2 travelers x 2 meals x 17.5
	if math.Abs(cost-210) > 1e-9 {
		t.Fatalf("meal cost = %v, want 210", cost)
	}
}

func TestMealCostEmptyCatalog(t *testing.T) {
	req := domain.TripRequest{DurationDays: 3, Travelers: 2, HotelTier: 3}

	_, err := MealCost(req, nil, domain.DefaultPriceBands())
	if !errors.Is(err, domain.ErrInsufficientCatalog) {
		t.Fatalf("err = %v, want ErrInsufficientCatalog", err)
	}
}
