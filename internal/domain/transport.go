package domain

import "time"

// TransportOffer is a priced way of doing the round trip.
//
// For trains Price is per traveler and BookingFee is charged once per booking.
// For cars Price is a flat amount shared by the whole group (parking),
// with Tolls and Fuel on top.
type TransportOffer struct {
	Mode       TransportMode `json:"mode"`
	Label      string        `json:"label"`
	Price      float64       `json:"price"`
	Duration   time.Duration `json:"duration"`
	Tolls      float64       `json:"tolls,omitempty"`
	Fuel       float64       `json:"fuel,omitempty"`
	BookingFee float64       `json:"booking_fee,omitempty"`
}

// TotalCost is the cost of the offer for the whole group.
func (o TransportOffer) TotalCost(travelers int) float64 {
	switch o.Mode {
	case ModeTrain:
		return o.Price*float64(travelers) + o.BookingFee
	case ModeCar:
		return o.Price + o.Tolls + o.Fuel
	default:
		return 0
	}
}

// TransportOption is one row of the comparison table.
type TransportOption struct {
	Mode            TransportMode  `json:"mode"`
	Offer           TransportOffer `json:"offer"`
	TotalCost       float64        `json:"total_cost"`
	TotalDuration   time.Duration  `json:"total_duration"`
	CostPerTraveler float64        `json:"cost_per_traveler"`
}

// TransportComparison holds one row per mode that had offers, train first,
// and the recommended mode.
type TransportComparison struct {
	Options     []TransportOption `json:"options"`
	Recommended TransportMode     `json:"recommended"`
}

// Chosen returns the row of the recommended mode.
func (c TransportComparison) Chosen() (TransportOption, bool) {
	for _, o := range c.Options {
		if o.Mode == c.Recommended {
			return o, true
		}
	}
	return TransportOption{}, false
}
