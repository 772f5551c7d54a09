package services

import (
	"fmt"
	"trip-planner-service/internal/domain"
)

// CompareTransport normalizes train and car offers to per-trip totals and
// recommends a mode.
//
// Only the cheapest offer of each mode enters the table (ties: shorter
// duration, then catalog order). A mode without offers is left out; the call
// fails only when both are empty. The recommendation is the lower total cost,
// with an exact tie going to the preferred mode.
//
// Train totals scale with the group while car totals are flat, so large
// groups tip the recommendation towards the car.
func CompareTransport(
	travelers int,
	preferred domain.TransportMode,
	trainOffers []domain.TransportOffer,
	carOffers []domain.TransportOffer,
) (domain.TransportComparison, error) {
	if travelers < 1 {
		return domain.TransportComparison{}, fmt.Errorf("compare transport: %w: travelers must be at least 1, got %d", domain.ErrInvalidRequest, travelers)
	}

	options := make([]domain.TransportOption, 0, 2)
	if o, ok := cheapestOption(domain.ModeTrain, travelers, trainOffers); ok {
		options = append(options, o)
	}
	if o, ok := cheapestOption(domain.ModeCar, travelers, carOffers); ok {
		options = append(options, o)
	}

	if len(options) == 0 {
		return domain.TransportComparison{}, fmt.Errorf("compare transport: %w: no train or car offers", domain.ErrNoTransportAvailable)
	}

	recommended := options[0]
	for _, o := range options[1:] {
		if o.TotalCost < recommended.TotalCost ||
			(o.TotalCost == recommended.TotalCost && o.Mode == preferred) {
			recommended = o
		}
	}

	return domain.TransportComparison{
		Options:     options,
		Recommended: recommended.Mode,
	}, nil
}

// cheapestOption normalizes the offers of one mode and keeps the cheapest.
// Offers tagged with another mode are ignored.
func cheapestOption(mode domain.TransportMode, travelers int, offers []domain.TransportOffer) (domain.TransportOption, bool) {
	var (
		best  domain.TransportOption
		found bool
	)

	for _, offer := range offers {
		if offer.Mode == "" {
			offer.Mode = mode
		}
		if offer.Mode != mode {
			continue
		}

		total := offer.TotalCost(travelers)
		if total < 0 {
			continue
		}

		// Tie-breaker keeps the result independent of anything but catalog order.
		if !found || total < best.TotalCost || (total == best.TotalCost && offer.Duration < best.TotalDuration) {
			best = domain.TransportOption{
				Mode:            mode,
				Offer:           offer,
				TotalCost:       total,
				TotalDuration:   offer.Duration,
				CostPerTraveler: total / float64(travelers),
			}
			found = true
		}
	}

	return best, found
}
