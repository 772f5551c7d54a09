package services

import (
	"fmt"
	"trip-planner-service/internal/domain"
)

// RoomsNeeded is the number of rooms required to sleep every traveler.
func RoomsNeeded(travelers, capacity int) int {
	if travelers <= 0 || capacity <= 0 {
		return 0
	}
	// Ceiling division: a partly filled room is still a full room.
	return (travelers + capacity - 1) / capacity
}

// HotelQuote is the selected hotel and its unrounded stay cost.
type HotelQuote struct {
	Hotel domain.HotelOption
	Rooms int
	Cost  float64
}

// QuoteHotel picks the cheapest hotel of the requested tier and prices the stay.
//
// Rows with a capacity below one or a negative nightly price cannot be priced
// and are skipped. Equal costs keep catalog order.
func QuoteHotel(req domain.TripRequest, hotels []domain.HotelOption) (HotelQuote, error) {
	if req.DurationDays < 1 {
		return HotelQuote{}, fmt.Errorf("quote hotel: %w: duration must be at least 1 day, got %d", domain.ErrInvalidRequest, req.DurationDays)
	}
	if req.Travelers < 1 {
		return HotelQuote{}, fmt.Errorf("quote hotel: %w: travelers must be at least 1, got %d", domain.ErrInvalidRequest, req.Travelers)
	}

	var (
		best  HotelQuote
		found bool
	)
	for _, h := range hotels {
		if h.Tier != req.HotelTier || h.Capacity < 1 || h.NightlyPrice < 0 {
			continue
		}

		rooms := RoomsNeeded(req.Travelers, h.Capacity)
		cost := float64(rooms) * h.NightlyPrice * float64(req.Nights())
		if !found || cost < best.Cost {
			best = HotelQuote{Hotel: h, Rooms: rooms, Cost: cost}
			found = true
		}
	}

	if !found {
		return HotelQuote{}, fmt.Errorf("quote hotel: %w: no hotel for tier %d", domain.ErrInsufficientCatalog, req.HotelTier)
	}

	return best, nil
}

// HotelCost is the unrounded stay cost for the cheapest hotel of the tier.
func HotelCost(req domain.TripRequest, hotels []domain.HotelOption) (float64, error) {
	q, err := QuoteHotel(req, hotels)
	if err != nil {
		return 0, err
	}
	return q.Cost, nil
}

// AverageMealPrice is the mean per-person price of the restaurants that fall
// inside the tier's band. When none does, the whole catalog is averaged.
func AverageMealPrice(tier int, restaurants []domain.Restaurant, bands domain.PriceBands) (float64, error) {
	if len(restaurants) == 0 {
		return 0, fmt.Errorf("average meal price: %w: restaurant catalog is empty", domain.ErrInsufficientCatalog)
	}

	band, err := bands.For(tier)
	if err != nil {
		return 0, fmt.Errorf("average meal price: %w", err)
	}

	var sum, all float64
	n := 0
	for _, r := range restaurants {
		all += r.AvgCost
		if band.Contains(r.AvgCost) {
			sum += r.AvgCost
			n++
		}
	}

	if n == 0 {
		return all / float64(len(restaurants)), nil
	}
	return sum / float64(n), nil
}

// MealCost estimates lunch and dinner for every traveler on every day.
func MealCost(req domain.TripRequest, restaurants []domain.Restaurant, bands domain.PriceBands) (float64, error) {
	if req.DurationDays < 1 {
		return 0, fmt.Errorf("meal cost: %w: duration must be at least 1 day, got %d", domain.ErrInvalidRequest, req.DurationDays)
	}

	avg, err := AverageMealPrice(req.HotelTier, restaurants, bands)
	if err != nil {
		return 0, fmt.Errorf("meal cost: %w", err)
	}

	const mealsPerDay = 2
	return float64(req.DurationDays) * float64(req.Travelers) * mealsPerDay * avg, nil
}
