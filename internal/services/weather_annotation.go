package services

import (
	"trip-planner-service/internal/domain"
)

const freezingC = 0.0

// AnnotateWeather marks each slot's POI as suitable or not for the day's
// forecast. Indoor POIs are always good; outdoor ones are poor on wet or
// freezing days. Slots without a POI or without a forecast for their date
// stay unknown. Assignments are never changed.
func AnnotateWeather(slots []domain.ItinerarySlot, forecast []domain.DailyForecast) {
	if len(forecast) == 0 {
		return
	}

	byDate := make(map[string]domain.DailyForecast, len(forecast))
	for _, f := range forecast {
		byDate[f.Date.Format("2006-01-02")] = f
	}

	for i := range slots {
		s := &slots[i]
		if s.POI == nil {
			s.Suitability = domain.SuitabilityUnknown
			continue
		}

		f, ok := byDate[s.Date.Format("2006-01-02")]
		if !ok {
			s.Suitability = domain.SuitabilityUnknown
			continue
		}

		if s.POI.Outdoor && (f.Wet() || f.TempMaxC < freezingC) {
			s.Suitability = domain.SuitabilityPoor
			continue
		}
		s.Suitability = domain.SuitabilityGood
	}
}
