package dto

import "trip-planner-service/internal/domain"

type ForecastDay struct {
	Date            string  `json:"date"`
	WeatherCode     int     `json:"weather_code"`
	Description     string  `json:"description"`
	TempMaxC        float64 `json:"temp_max_c"`
	TempMinC        float64 `json:"temp_min_c"`
	PrecipitationMM float64 `json:"precipitation_mm"`
}

type ForecastResponse struct {
	City string        `json:"city"`
	Days []ForecastDay `json:"days"`
}

func NewForecastResponse(city string, in []domain.DailyForecast) ForecastResponse {
	res := ForecastResponse{City: city, Days: make([]ForecastDay, 0, len(in))}
	for _, f := range in {
		res.Days = append(res.Days, ForecastDay{
			Date:            f.Date.Format(DateLayout),
			WeatherCode:     f.WeatherCode,
			Description:     f.Description,
			TempMaxC:        f.TempMaxC,
			TempMinC:        f.TempMinC,
			PrecipitationMM: f.PrecipitationMM,
		})
	}
	return res
}
