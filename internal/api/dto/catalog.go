package dto

import "trip-planner-service/internal/domain"

type HotelItem struct {
	Name         string  `json:"name"`
	Tier         int     `json:"tier"`
	NightlyPrice float64 `json:"nightly_price"`
	Capacity     int     `json:"capacity"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
}

type POIItem struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	TicketPrice  float64 `json:"ticket_price"`
	VisitMinutes int     `json:"visit_minutes"`
	Outdoor      bool    `json:"outdoor"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
}

type RestaurantItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	AvgCost  float64 `json:"avg_cost"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
}

// CatalogResponse carries one catalog kind; the other lists are omitted.
type CatalogResponse struct {
	City        string           `json:"city"`
	Kind        string           `json:"kind"`
	Hotels      []HotelItem      `json:"hotels,omitempty"`
	POIs        []POIItem        `json:"pois,omitempty"`
	Restaurants []RestaurantItem `json:"restaurants,omitempty"`
}

func NewHotelItems(in []domain.HotelOption) []HotelItem {
	out := make([]HotelItem, 0, len(in))
	for _, h := range in {
		out = append(out, HotelItem{
			Name: h.Name, Tier: h.Tier, NightlyPrice: h.NightlyPrice, Capacity: h.Capacity,
			Lon: h.Position.Lon, Lat: h.Position.Lat,
		})
	}
	return out
}

func NewPOIItems(in []domain.POI) []POIItem {
	out := make([]POIItem, 0, len(in))
	for _, p := range in {
		out = append(out, POIItem{
			Name: p.Name, Category: p.Category, TicketPrice: p.TicketPrice,
			VisitMinutes: int(p.VisitDuration.Minutes()), Outdoor: p.Outdoor,
			Lon: p.Position.Lon, Lat: p.Position.Lat,
		})
	}
	return out
}

func NewRestaurantItems(in []domain.Restaurant) []RestaurantItem {
	out := make([]RestaurantItem, 0, len(in))
	for _, r := range in {
		out = append(out, RestaurantItem{
			Name: r.Name, Category: r.Category, AvgCost: r.AvgCost,
			Lon: r.Position.Lon, Lat: r.Position.Lat,
		})
	}
	return out
}
