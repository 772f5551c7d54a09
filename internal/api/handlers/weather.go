package handlers

import (
	"net/http"
	"strconv"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

// WeatherHandler serves the destination forecast.
type WeatherHandler struct {
	Provider ports.WeatherProvider
	City     string
	Position domain.Coordinates
	// Defaults to time.Now.
	Now func() time.Time
}

func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if h.Provider == nil {
		writeError(w, r, http.StatusServiceUnavailable, "weather provider not configured")
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	q := r.URL.Query()
	start := now().UTC().Truncate(24 * time.Hour)
	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start must be a date formatted YYYY-MM-DD")
			return
		}
		start = t
	}

	days := 3
	if raw := q.Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < domain.MinDurationDays || n > domain.MaxDurationDays {
			writeError(w, r, http.StatusBadRequest, "days must be between 1 and 10")
			return
		}
		days = n
	}

	forecast, err := h.Provider.Forecast(r.Context(), ports.ForecastQuery{
		Position: h.Position,
		From:     start,
		Days:     days,
	})
	if err != nil {
		zap.L().Warn("forecast failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusBadGateway, "forecast unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewForecastResponse(h.City, forecast))
}
