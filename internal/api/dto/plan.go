package dto

import (
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
)

const DateLayout = "2006-01-02"

// PlanRequest is the body of POST /plans and POST /transport/compare.
type PlanRequest struct {
	OriginCity    string   `json:"origin_city" validate:"required,max=100"`
	StartDate     string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	DurationDays  int      `json:"duration_days" validate:"min=1,max=10"`
	Travelers     int      `json:"travelers" validate:"min=1,max=20"`
	PreferredMode string   `json:"preferred_mode" validate:"required,oneof=train car"`
	HotelTier     int      `json:"hotel_tier" validate:"min=1,max=5"`
	BudgetCap     *float64 `json:"budget_cap,omitempty" validate:"omitempty,gte=0"`
}

// Normalize trims free text and lower-cases the mode before validation.
func (r *PlanRequest) Normalize() {
	r.OriginCity = strings.TrimSpace(r.OriginCity)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.PreferredMode = strings.ToLower(strings.TrimSpace(r.PreferredMode))
}

// ToDomain converts a validated request. Range checks stay in the domain.
func (r PlanRequest) ToDomain() (domain.TripRequest, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return domain.TripRequest{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", domain.ErrInvalidRequest)
	}

	mode, err := domain.ParseTransportMode(r.PreferredMode)
	if err != nil {
		return domain.TripRequest{}, err
	}

	return domain.TripRequest{
		OriginCity:    strings.TrimSpace(r.OriginCity),
		StartDate:     start,
		DurationDays:  r.DurationDays,
		Travelers:     r.Travelers,
		PreferredMode: mode,
		HotelTier:     r.HotelTier,
		BudgetCap:     r.BudgetCap,
	}, nil
}

type TransportOptionResponse struct {
	Mode            string  `json:"mode"`
	Label           string  `json:"label"`
	TotalCost       float64 `json:"total_cost"`
	CostPerTraveler float64 `json:"cost_per_traveler"`
	DurationMinutes int     `json:"duration_minutes"`
	Fuel            float64 `json:"fuel,omitempty"`
	Tolls           float64 `json:"tolls,omitempty"`
	BookingFee      float64 `json:"booking_fee,omitempty"`
}

type TransportResponse struct {
	Options     []TransportOptionResponse `json:"options"`
	Recommended string                    `json:"recommended"`
}

type HotelResponse struct {
	Name         string  `json:"name"`
	Tier         int     `json:"tier"`
	NightlyPrice float64 `json:"nightly_price"`
	Capacity     int     `json:"capacity"`
}

type CostBreakdown struct {
	Hotel         float64 `json:"hotel"`
	Transport     float64 `json:"transport"`
	Meals         float64 `json:"meals"`
	MealsEstimate float64 `json:"meals_estimate"`
	Activities    float64 `json:"activities"`
	GrandTotal    float64 `json:"grand_total"`
}

type SlotResponse struct {
	Day          int     `json:"day"`
	Date         string  `json:"date"`
	Session      string  `json:"session"`
	POI          string  `json:"poi,omitempty"`
	Outdoor      bool    `json:"outdoor,omitempty"`
	TicketPrice  float64 `json:"ticket_price,omitempty"`
	Restaurant   string  `json:"restaurant,omitempty"`
	Meal         string  `json:"meal"`
	MealPrice    float64 `json:"meal_price,omitempty"`
	RunningTotal float64 `json:"running_total"`
	Suitability  string  `json:"suitability"`
}

type RouteStopResponse struct {
	Name            string `json:"name"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

type DayRouteResponse struct {
	Day                  int                 `json:"day"`
	Start                string              `json:"start"`
	Stops                []RouteStopResponse `json:"stops"`
	TotalDistanceMeters  int                 `json:"total_distance_meters"`
	TotalDurationSeconds int                 `json:"total_duration_seconds"`
}

type PlanResponse struct {
	Destination     string             `json:"destination"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Travelers       int                `json:"travelers"`
	Transport       TransportResponse  `json:"transport"`
	Hotel           HotelResponse      `json:"hotel"`
	Costs           CostBreakdown      `json:"costs"`
	BudgetCap       *float64           `json:"budget_cap,omitempty"`
	OverBudget      bool               `json:"over_budget"`
	RemainingBudget *float64           `json:"remaining_budget,omitempty"`
	ItinerarySpend  float64            `json:"itinerary_spend"`
	Itinerary       []SlotResponse     `json:"itinerary"`
	DayRoutes       []DayRouteResponse `json:"day_routes,omitempty"`
}

func NewTransportResponse(c domain.TransportComparison) TransportResponse {
	res := TransportResponse{
		Options:     make([]TransportOptionResponse, 0, len(c.Options)),
		Recommended: string(c.Recommended),
	}
	for _, o := range c.Options {
		res.Options = append(res.Options, TransportOptionResponse{
			Mode:            string(o.Mode),
			Label:           o.Offer.Label,
			TotalCost:       o.TotalCost,
			CostPerTraveler: o.CostPerTraveler,
			DurationMinutes: int(o.TotalDuration.Minutes()),
			Fuel:            domain.RoundMoney(o.Offer.Fuel),
			Tolls:           domain.RoundMoney(o.Offer.Tolls),
			BookingFee:      o.Offer.BookingFee,
		})
	}
	return res
}

func NewPlanResponse(destination string, p *domain.TripPlan) PlanResponse {
	res := PlanResponse{
		Destination: destination,
		StartDate:   p.Request.StartDate.Format(DateLayout),
		EndDate:     p.Request.EndDate().Format(DateLayout),
		Travelers:   p.Request.Travelers,
		Transport:   NewTransportResponse(p.Transport),
		Hotel: HotelResponse{
			Name:         p.Hotel.Name,
			Tier:         p.Hotel.Tier,
			NightlyPrice: p.Hotel.NightlyPrice,
			Capacity:     p.Hotel.Capacity,
		},
		Costs: CostBreakdown{
			Hotel:         p.HotelCost,
			Transport:     p.TransportCost(),
			Meals:         p.MealCost,
			MealsEstimate: p.MealEstimate,
			Activities:    p.ActivityCost,
			GrandTotal:    p.GrandTotal,
		},
		BudgetCap:       p.Request.BudgetCap,
		OverBudget:      p.OverBudget,
		RemainingBudget: p.RemainingBudget,
		ItinerarySpend:  p.ItinerarySpend,
		Itinerary:       make([]SlotResponse, 0, len(p.Slots)),
	}

	for _, s := range p.Slots {
		slot := SlotResponse{
			Day:          s.Day + 1,
			Date:         s.Date.Format(DateLayout),
			Session:      string(s.Session),
			Meal:         string(s.Meal),
			RunningTotal: s.RunningTotal,
			Suitability:  string(s.Suitability),
		}
		if s.POI != nil {
			slot.POI = s.POI.Name
			slot.Outdoor = s.POI.Outdoor
			slot.TicketPrice = s.POI.TicketPrice
		}
		if s.Restaurant != nil {
			slot.Restaurant = s.Restaurant.Name
			slot.MealPrice = s.Restaurant.AvgCost
		}
		res.Itinerary = append(res.Itinerary, slot)
	}

	for _, r := range p.DayRoutes {
		stops := make([]RouteStopResponse, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, RouteStopResponse(s))
		}
		res.DayRoutes = append(res.DayRoutes, DayRouteResponse{
			Day:                  r.Day + 1,
			Start:                r.Start,
			Stops:                stops,
			TotalDistanceMeters:  r.TotalDistanceMeters,
			TotalDurationSeconds: r.TotalDurationSeconds,
		})
	}

	return res
}
