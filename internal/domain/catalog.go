package domain

import "time"

// HotelOption is one bookable room type. Capacity is the number of
// travelers a single room sleeps.
type HotelOption struct {
	Name         string      `json:"name"`
	Tier         int         `json:"tier"`
	NightlyPrice float64     `json:"nightly_price"`
	Capacity     int         `json:"capacity"`
	Position     Coordinates `json:"position"`
}

// POI is a visitable point of interest. A zero TicketPrice means free entry.
type POI struct {
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	TicketPrice   float64       `json:"ticket_price"`
	VisitDuration time.Duration `json:"visit_duration"`
	Position      Coordinates   `json:"position"`
	Outdoor       bool          `json:"outdoor"`
}

// Restaurant carries the average spend per person for one meal.
type Restaurant struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	AvgCost  float64     `json:"avg_cost"`
	Position Coordinates `json:"position"`
}

// Catalogs bundles the read-only, order-preserving inputs of one planning call.
// Catalog order drives every tie-break, so callers must keep it stable.
type Catalogs struct {
	Hotels      []HotelOption
	POIs        []POI
	Restaurants []Restaurant
	TrainOffers []TransportOffer
	CarOffers   []TransportOffer
	// Optional; only used to annotate outdoor suitability.
	Forecast []DailyForecast
}
