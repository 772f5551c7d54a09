package trains

import (
	"context"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// StaticFare is a published one-way price range for a rail link.
type StaticFare struct {
	Origin      string  `yaml:"origin"`
	Destination string  `yaml:"destination"`
	Operator    string  `yaml:"operator"`
	PriceMin    float64 `yaml:"price_min"`
	PriceMax    float64 `yaml:"price_max"`
	Minutes     int     `yaml:"minutes"`
}

// DefaultFares are the advertised fares into Lille.
func DefaultFares() []StaticFare {
	return []StaticFare{
		{Origin: "Paris", Destination: "Lille", Operator: "OUIGO / TGV", PriceMin: 10.50, PriceMax: 30.00, Minutes: 62},
		{Origin: "London", Destination: "Lille", Operator: "Eurostar", PriceMin: 44.00, PriceMax: 126.00, Minutes: 82},
		{Origin: "Brussels", Destination: "Lille", Operator: "TGV / Thalys", PriceMin: 15.00, PriceMax: 24.00, Minutes: 35},
	}
}

// StaticProvider answers from a fixed fare table. Each link yields a saver
// and a flexible round trip, both priced per traveler.
type StaticProvider struct {
	fares      []StaticFare
	bookingFee float64
}

func NewStaticProvider(fares []StaticFare, bookingFee float64) *StaticProvider {
	return &StaticProvider{fares: fares, bookingFee: bookingFee}
}

func (p *StaticProvider) TrainOffers(_ context.Context, q ports.TrainQuery) ([]domain.TransportOffer, error) {
	origin := strings.TrimSpace(q.Origin)
	destination := strings.TrimSpace(q.Destination)

	offers := make([]domain.TransportOffer, 0, 2)
	for _, f := range p.fares {
		if !strings.EqualFold(f.Origin, origin) || !strings.EqualFold(f.Destination, destination) {
			continue
		}

		duration := 2 * time.Duration(f.Minutes) * time.Minute
		offers = append(offers,
			domain.TransportOffer{
				Mode:       domain.ModeTrain,
				Label:      fmt.Sprintf("%s %s - %s, saver return", f.Operator, f.Origin, f.Destination),
				Price:      2 * f.PriceMin,
				Duration:   duration,
				BookingFee: p.bookingFee,
			},
			domain.TransportOffer{
				Mode:       domain.ModeTrain,
				Label:      fmt.Sprintf("%s %s - %s, flexible return", f.Operator, f.Origin, f.Destination),
				Price:      2 * f.PriceMax,
				Duration:   duration,
				BookingFee: p.bookingFee,
			},
		)
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("static fares: no rail link %q -> %q", origin, destination)
	}

	return offers, nil
}
