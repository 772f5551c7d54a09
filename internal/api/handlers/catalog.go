package handlers

import (
	"net/http"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

// CatalogHandler exposes the read-only destination catalogs.
type CatalogHandler struct {
	Repo ports.CatalogRepository
	City string
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	kind := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind")))
	res := dto.CatalogResponse{City: h.City, Kind: kind}

	var err error
	switch kind {
	case "hotels":
		hotels, e := h.Repo.ListHotels(r.Context(), h.City)
		res.Hotels, err = dto.NewHotelItems(hotels), e
	case "pois":
		pois, e := h.Repo.ListPOIs(r.Context(), h.City)
		res.POIs, err = dto.NewPOIItems(pois), e
	case "restaurants":
		restaurants, e := h.Repo.ListRestaurants(r.Context(), h.City)
		res.Restaurants, err = dto.NewRestaurantItems(restaurants), e
	default:
		writeError(w, r, http.StatusBadRequest, "kind must be one of: hotels, pois, restaurants")
		return
	}

	if err != nil {
		zap.L().Error("list catalog failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("kind", kind),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}
