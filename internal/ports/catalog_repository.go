package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving destination catalogs from a data source.
// Implementations must return records in catalog order.
type CatalogRepository interface {
	ListHotels(ctx context.Context, city string) ([]domain.HotelOption, error)
	ListPOIs(ctx context.Context, city string) ([]domain.POI, error)
	ListRestaurants(ctx context.Context, city string) ([]domain.Restaurant, error)
}
