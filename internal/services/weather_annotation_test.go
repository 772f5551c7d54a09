package services

import (
	"testing"
	"time"
	"trip-planner-service/internal/domain"
)

func TestAnnotateWeather(t *testing.T) {
	day1 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	slots := []domain.ItinerarySlot{
		{Day: 0, Date: day1, POI: &domain.POI{Name: "Citadel park", Outdoor: true}},
		{Day: 0, Date: day1, POI: &domain.POI{Name: "Fine Arts Palace"}},
		{Day: 1, Date: day2, POI: &domain.POI{Name: "Zoo", Outdoor: true}},
		{Day: 1, Date: day2},
		{Day: 2, Date: day2.AddDate(0, 0, 1), POI: &domain.POI{Name: "Belfry", Outdoor: true}},
	}
	forecast := []domain.DailyForecast{
		{Date: day1, WeatherCode: 63, TempMaxC: 14},
		{Date: day2, WeatherCode: 1, TempMaxC: 22},
	}

	AnnotateWeather(slots, forecast)

	want := []domain.Suitability{
		domain.SuitabilityPoor,
		domain.SuitabilityGood,
		domain.SuitabilityGood,
		domain.SuitabilityUnknown,
		domain.SuitabilityUnknown,
	}
	for i, w := range want {
		if slots[i].Suitability != w {
			t.Errorf("slot %d suitability = %q, want %q", i, slots[i].Suitability, w)
		}
	}
}

func TestAnnotateWeatherFreezingDay(t *testing.T) {
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	slots := []domain.ItinerarySlot{{Date: day, POI: &domain.POI{Name: "Market", Outdoor: true}}}

	AnnotateWeather(slots, []domain.DailyForecast{{Date: day, WeatherCode: 0, TempMaxC: -3}})

	if slots[0].Suitability != domain.SuitabilityPoor {
		t.Fatalf("suitability = %q, want poor", slots[0].Suitability)
	}
}
