package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

const DefaultOpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// Open-Meteo serves at most this many forecast days.
const maxForecastDays = 16

// OpenMeteoProvider reads daily forecasts from Open-Meteo. No key needed.
type OpenMeteoProvider struct {
	client   *httpx.Client
	baseURL  string
	timezone string
}

func NewOpenMeteoProvider(baseURL, timezone string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoBaseURL
	}
	if timezone == "" {
		timezone = "Europe/Paris"
	}
	return &OpenMeteoProvider{
		client:   httpx.NewClient(10 * time.Second),
		baseURL:  baseURL,
		timezone: timezone,
	}
}

type dailyResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		WeatherCode      []*int     `json:"weather_code"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
		TemperatureMin   []*float64 `json:"temperature_2m_min"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, q ports.ForecastQuery) (_ []domain.DailyForecast, err error) {
	defer obs.Time(ctx, "openmeteo.Forecast")(&err)

	if q.Days < 1 {
		return []domain.DailyForecast{}, nil
	}
	days := q.Days
	if days > maxForecastDays {
		days = maxForecastDays
	}

	start := q.From.Format("2006-01-02")
	end := q.From.AddDate(0, 0, days-1).Format("2006-01-02")

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		v := req.URL.Query()
		v.Set("latitude", strconv.FormatFloat(q.Position.Lat, 'f', 4, 64))
		v.Set("longitude", strconv.FormatFloat(q.Position.Lon, 'f', 4, 64))
		v.Set("daily", strings.Join([]string{
			"weather_code", "temperature_2m_max", "temperature_2m_min", "precipitation_sum",
		}, ","))
		v.Set("timezone", p.timezone)
		v.Set("start_date", start)
		v.Set("end_date", end)
		req.URL.RawQuery = v.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("open-meteo forecast: %w", err)
	}
	defer resp.Body.Close()

	var decoded dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("open-meteo forecast: decode response: %w", err)
	}

	d := decoded.Daily
	out := make([]domain.DailyForecast, 0, len(d.Time))
	for i, day := range d.Time {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("open-meteo forecast: bad date %q: %w", day, err)
		}

		code, ok := intAt(d.WeatherCode, i)
		if !ok {
			// Past the model horizon Open-Meteo pads with nulls.
			continue
		}

		out = append(out, domain.DailyForecast{
			Date:            date,
			WeatherCode:     code,
			Description:     domain.DescribeWeatherCode(code),
			TempMaxC:        floatAt(d.TemperatureMax, i),
			TempMinC:        floatAt(d.TemperatureMin, i),
			PrecipitationMM: floatAt(d.PrecipitationSum, i),
		})
	}

	return out, nil
}

func intAt(s []*int, i int) (int, bool) {
	if i >= len(s) || s[i] == nil {
		return 0, false
	}
	return *s[i], true
}

func floatAt(s []*float64, i int) float64 {
	if i >= len(s) || s[i] == nil {
		return 0
	}
	return *s[i]
}
