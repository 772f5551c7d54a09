package domain

import "time"

// Session is a half-day scheduling unit.
type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
)

// Sessions in chronological order within a day.
var Sessions = []Session{SessionMorning, SessionAfternoon}

// Meal served alongside a session: lunch after the morning visit,
// dinner after the afternoon one.
type Meal string

const (
	MealLunch  Meal = "lunch"
	MealDinner Meal = "dinner"
)

// MealFor returns the meal paired with a session.
func MealFor(s Session) Meal {
	if s == SessionMorning {
		return MealLunch
	}
	return MealDinner
}

// Suitability annotates an assigned POI against the day's weather.
type Suitability string

const (
	SuitabilityUnknown Suitability = "unknown"
	SuitabilityGood    Suitability = "good"
	SuitabilityPoor    Suitability = "poor"
)

// ItinerarySlot is one (day, session) cell of the schedule. POI and
// Restaurant are nil when their queue ran dry.
type ItinerarySlot struct {
	Day        int         `json:"day"`
	Date       time.Time   `json:"date"`
	Session    Session     `json:"session"`
	POI        *POI        `json:"poi,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Meal       Meal        `json:"meal"`
	// Hotel + transport + everything assigned up to and including this slot.
	RunningTotal float64     `json:"running_total"`
	Suitability  Suitability `json:"suitability"`
}

// TripPlan is the assembled result of one planning call. All currency
// fields are rounded to cents.
type TripPlan struct {
	Request      TripRequest         `json:"request"`
	Transport    TransportComparison `json:"transport"`
	Hotel        HotelOption         `json:"hotel"`
	HotelCost    float64             `json:"hotel_cost"`
	ActivityCost float64             `json:"activity_cost"`
	Slots        []ItinerarySlot     `json:"slots"`
	GrandTotal   float64             `json:"grand_total"`
	OverBudget   bool                `json:"over_budget"`

	// Assigned restaurants, plus the tier average for empty meal slots.
	MealCost float64 `json:"meal_cost"`

	// Tier-band average for every meal, before any restaurant is assigned.
	MealEstimate float64 `json:"meal_estimate"`

	// Cap minus grand total; nil when no cap is set. May be negative.
	RemainingBudget *float64 `json:"remaining_budget,omitempty"`

	// Sum of the restaurants and tickets actually assigned, for the whole group.
	ItinerarySpend float64 `json:"itinerary_spend"`

	// Walking order per day; filled only when positions or a walking
	// provider are available.
	DayRoutes []DayRoute `json:"day_routes,omitempty"`
}

// TransportCost is the total cost of the recommended transport row.
func (p *TripPlan) TransportCost() float64 {
	if o, ok := p.Transport.Chosen(); ok {
		return o.TotalCost
	}
	return 0
}
