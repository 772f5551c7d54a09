package ports

import (
	"context"
	"time"
	"trip-planner-service/internal/domain"
)

// TrainQuery describes a round trip by rail.
type TrainQuery struct {
	Origin      string
	Destination string
	DepartOn    time.Time
	ReturnOn    time.Time
	Travelers   int
}

// TrainOfferProvider returns normalized round-trip train offers,
// priced per traveler.
type TrainOfferProvider interface {
	TrainOffers(ctx context.Context, q TrainQuery) ([]domain.TransportOffer, error)
}
