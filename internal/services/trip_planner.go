package services

import (
	"fmt"
	"trip-planner-service/internal/domain"
)

// PlanOptions holds pricing data that is configuration rather than input.
type PlanOptions struct {
	PriceBands domain.PriceBands
}

// DefaultPlanOptions uses the compiled-in meal price bands.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{PriceBands: domain.DefaultPriceBands()}
}

// PlanTrip turns a request and its catalogs into a complete TripPlan.
//
// It validates the request, prices the hotel, picks the transport, builds the
// itinerary and assembles the plan. Meals are priced from the restaurants the
// itinerary actually assigned; meal slots left empty are priced at the tier's
// average so the grand total still covers every meal. Hard failures
// (ErrInvalidRequest, ErrInsufficientCatalog, ErrNoTransportAvailable) return
// before anything is assembled. The call is pure: no I/O, no shared state,
// inputs are never modified, and identical inputs give identical plans.
func PlanTrip(req domain.TripRequest, catalogs domain.Catalogs, opts PlanOptions) (*domain.TripPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	hotel, err := QuoteHotel(req, catalogs.Hotels)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	mealEstimate, err := MealCost(req, catalogs.Restaurants, opts.PriceBands)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	avgMeal, err := AverageMealPrice(req.HotelTier, catalogs.Restaurants, opts.PriceBands)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	comparison, err := CompareTransport(req.Travelers, req.PreferredMode, catalogs.TrainOffers, catalogs.CarOffers)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	chosen, ok := comparison.Chosen()
	if !ok {
		return nil, fmt.Errorf("plan trip: recommended mode %q missing from comparison", comparison.Recommended)
	}

	itinerary := BuildItinerary(ItineraryInput{
		StartDate:   req.StartDate,
		Days:        req.DurationDays,
		Travelers:   req.Travelers,
		POIs:        catalogs.POIs,
		Restaurants: catalogs.Restaurants,
		BaseCost:    hotel.Cost + chosen.TotalCost,
		BudgetCap:   req.BudgetCap,
	})
	AnnotateWeather(itinerary.Slots, catalogs.Forecast)

	meals, activities := ItineraryCosts(itinerary.Slots, req.Travelers, avgMeal)
	grandTotal := domain.RoundMoney(hotel.Cost + chosen.TotalCost + meals + activities)

	plan := &domain.TripPlan{
		Request:        req,
		Transport:      roundComparison(comparison),
		Hotel:          hotel.Hotel,
		HotelCost:      domain.RoundMoney(hotel.Cost),
		MealCost:       domain.RoundMoney(meals),
		MealEstimate:   domain.RoundMoney(mealEstimate),
		ActivityCost:   domain.RoundMoney(activities),
		Slots:          itinerary.Slots,
		GrandTotal:     grandTotal,
		ItinerarySpend: domain.RoundMoney(itinerary.Spend),
	}

	if req.BudgetCap != nil {
		// The builder's running total never exceeds the grand total, so both
		// checks agree; either one flags the plan.
		plan.OverBudget = grandTotal > *req.BudgetCap || itinerary.ExceededCap
		remaining := domain.RoundMoney(*req.BudgetCap - grandTotal)
		plan.RemainingBudget = &remaining
	}

	return plan, nil
}

// ItineraryCosts returns the group's meal and ticket spend for the slots.
// A slot without a restaurant is charged avgMeal per traveler.
func ItineraryCosts(slots []domain.ItinerarySlot, travelers int, avgMeal float64) (meals, activities float64) {
	t := float64(travelers)
	for _, s := range slots {
		if s.Restaurant != nil {
			meals += s.Restaurant.AvgCost * t
		} else {
			meals += avgMeal * t
		}
		if s.POI != nil {
			activities += s.POI.TicketPrice * t
		}
	}
	return meals, activities
}

func roundComparison(c domain.TransportComparison) domain.TransportComparison {
	options := make([]domain.TransportOption, len(c.Options))
	for i, o := range c.Options {
		o.TotalCost = domain.RoundMoney(o.TotalCost)
		o.CostPerTraveler = domain.RoundMoney(o.CostPerTraveler)
		options[i] = o
	}
	return domain.TransportComparison{Options: options, Recommended: c.Recommended}
}
