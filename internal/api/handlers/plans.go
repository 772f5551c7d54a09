package handlers

import (
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"
)

// PlanHandler serves the planning engine and the standalone comparator.
type PlanHandler struct {
	Sources services.Sources
	Options services.PlanOptions
}

func (h *PlanHandler) readRequest(w http.ResponseWriter, r *http.Request) (domain.TripRequest, bool) {
	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return domain.TripRequest{}, false
	}

	req.Normalize()
	if !validateStruct(w, r, req) {
		return domain.TripRequest{}, false
	}

	trip, err := req.ToDomain()
	if err != nil {
		writeDomainError(w, r, "plan", err)
		return domain.TripRequest{}, false
	}
	return trip, true
}

// Plan gathers the destination catalogs and offers, then builds a full plan.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	trip, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	plan, err := services.PlanTripFromSources(r.Context(), trip, h.Sources, h.Options)
	if err != nil {
		writeDomainError(w, r, "plan trip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(h.Sources.Destination, plan))
}

// CompareTransport returns only the normalized transport table.
func (h *PlanHandler) CompareTransport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	trip, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	cmp, err := services.CompareTransportFromSources(r.Context(), trip, h.Sources)
	if err != nil {
		writeDomainError(w, r, "compare transport", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTransportResponse(cmp))
}
