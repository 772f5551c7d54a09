package domain

// RouteStop is one leg of a day's walk, ending at Name.
type RouteStop struct {
	Name            string `json:"name"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

// DayRoute orders one day's visits and meals into a loop from the hotel.
// It never changes which POI or restaurant a slot holds.
type DayRoute struct {
	Day                  int         `json:"day"`
	Start                string      `json:"start"`
	Stops                []RouteStop `json:"stops"`
	TotalDistanceMeters  int         `json:"total_distance_meters"`
	TotalDurationSeconds int         `json:"total_duration_seconds"`
}
