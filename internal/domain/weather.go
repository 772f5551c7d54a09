package domain

import "time"

// DailyForecast is one day of weather as reported by a forecast provider.
// WeatherCode follows the WMO interpretation codes.
type DailyForecast struct {
	Date            time.Time `json:"date"`
	WeatherCode     int       `json:"weather_code"`
	Description     string    `json:"description"`
	TempMaxC        float64   `json:"temp_max_c"`
	TempMinC        float64   `json:"temp_min_c"`
	PrecipitationMM float64   `json:"precipitation_mm"`
}

// Wet reports drizzle, rain, snow, showers or thunderstorms.
func (f DailyForecast) Wet() bool { return f.WeatherCode >= 51 }

var wmoDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Freezing rain",
	67: "Heavy freezing rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Rain showers",
	81: "Heavy rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeWeatherCode maps a WMO code to a short English label.
func DescribeWeatherCode(code int) string {
	if d, ok := wmoDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}
