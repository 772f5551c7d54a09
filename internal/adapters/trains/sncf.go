package trains

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/patrickmn/go-cache"
)

const DefaultSNCFBaseURL = "https://api.sncf.com/v1/coverage/sncf"

const sncfDateTime = "20060102T150405"

// SNCFProvider builds round-trip offers from the SNCF (Navitia) journeys API.
//
// Each priced outbound journey is paired with the cheapest priced return.
// Journeys without a fare are skipped.
type SNCFProvider struct {
	client     *httpx.Client
	apiKey     string
	baseURL    string
	bookingFee float64
	stations   *cache.Cache
}

func NewSNCFProvider(apiKey, baseURL string, bookingFee float64) (*SNCFProvider, error) {
	if apiKey == "" {
		return nil, errors.New("SNCF api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultSNCFBaseURL
	}

	return &SNCFProvider{
		client:     httpx.NewClient(15 * time.Second),
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		bookingFee: bookingFee,
		// Station ids are stable; keep them for a day.
		stations: cache.New(24*time.Hour, time.Hour),
	}, nil
}

type placesResponse struct {
	Places []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		EmbeddedType string `json:"embedded_type"`
	} `json:"places"`
}

type journeysResponse struct {
	Journeys []journey `json:"journeys"`
}

type journey struct {
	Duration          int         `json:"duration"`
	DepartureDateTime string      `json:"departure_date_time"`
	ArrivalDateTime   string      `json:"arrival_date_time"`
	Fare              journeyFare `json:"fare"`
}

type journeyFare struct {
	Total fareTotal `json:"total"`
	Found bool      `json:"found"`
}

type fareTotal struct {
	Value    fareValue `json:"value"`
	Currency string    `json:"currency"`
}

// fareValue accepts both "3250.0" and 3250.0; Navitia has sent either.
type fareValue string

func (v *fareValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = fareValue(s)
		return nil
	}
	if string(b) == "null" {
		*v = ""
		return nil
	}
	*v = fareValue(b)
	return nil
}

// price returns the fare in EUR. Navitia reports centimes by default.
func (j journey) price() (float64, bool) {
	raw := strings.TrimSpace(string(j.Fare.Total.Value))
	if raw == "" || strings.EqualFold(raw, "N/A") {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	if strings.EqualFold(j.Fare.Total.Currency, "centime") {
		v /= 100
	}
	return v, true
}

func (p *SNCFProvider) TrainOffers(ctx context.Context, q ports.TrainQuery) (_ []domain.TransportOffer, err error) {
	defer obs.Time(ctx, "sncf.TrainOffers")(&err)

	originID, err := p.stationID(ctx, q.Origin)
	if err != nil {
		return nil, fmt.Errorf("sncf offers: %w", err)
	}
	destinationID, err := p.stationID(ctx, q.Destination)
	if err != nil {
		return nil, fmt.Errorf("sncf offers: %w", err)
	}

	outbound, err := p.journeys(ctx, originID, destinationID, q.DepartOn)
	if err != nil {
		return nil, fmt.Errorf("sncf offers: outbound: %w", err)
	}
	inbound, err := p.journeys(ctx, destinationID, originID, q.ReturnOn)
	if err != nil {
		return nil, fmt.Errorf("sncf offers: return: %w", err)
	}

	var (
		back      journey
		backPrice float64
		haveBack  bool
	)
	for _, j := range inbound {
		if price, ok := j.price(); ok && (!haveBack || price < backPrice) {
			back, backPrice, haveBack = j, price, true
		}
	}
	if !haveBack {
		return nil, fmt.Errorf("sncf offers: no priced return journey %q -> %q", q.Destination, q.Origin)
	}

	offers := make([]domain.TransportOffer, 0, len(outbound))
	for _, j := range outbound {
		price, ok := j.price()
		if !ok {
			continue
		}
		offers = append(offers, domain.TransportOffer{
			Mode:       domain.ModeTrain,
			Label:      journeyLabel(q.Origin, q.Destination, j, back),
			Price:      price + backPrice,
			Duration:   time.Duration(j.Duration+back.Duration) * time.Second,
			BookingFee: p.bookingFee,
		})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("sncf offers: no priced outbound journey %q -> %q", q.Origin, q.Destination)
	}

	return offers, nil
}

func journeyLabel(origin, destination string, out, back journey) string {
	return fmt.Sprintf("SNCF %s - %s, out %s, back %s",
		origin, destination, clock(out.DepartureDateTime), clock(back.DepartureDateTime))
}

func clock(navitia string) string {
	t, err := time.Parse(sncfDateTime, navitia)
	if err != nil {
		return navitia
	}
	return t.Format("02-01-2006 15:04")
}

func (p *SNCFProvider) get(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.SetBasicAuth(p.apiKey, "")
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (p *SNCFProvider) stationID(ctx context.Context, city string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if key == "" {
		return "", errors.New("station lookup: city must be non-empty")
	}
	if id, ok := p.stations.Get(key); ok {
		return id.(string), nil
	}

	var decoded placesResponse
	if err := p.get(ctx, "/places", map[string]string{"q": city, "type[]": "stop_area"}, &decoded); err != nil {
		return "", fmt.Errorf("station lookup for %q: %w", city, err)
	}

	for _, place := range decoded.Places {
		if place.EmbeddedType == "stop_area" && place.ID != "" {
			p.stations.Set(key, place.ID, cache.DefaultExpiration)
			return place.ID, nil
		}
	}

	return "", fmt.Errorf("station lookup: no station found for %q", city)
}

func (p *SNCFProvider) journeys(ctx context.Context, fromID, toID string, day time.Time) ([]journey, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var decoded journeysResponse
	err := p.get(ctx, "/journeys", map[string]string{
		"from":     fromID,
		"to":       toID,
		"datetime": start.Format(sncfDateTime),
		"count":    "10",
	}, &decoded)
	if err != nil {
		return nil, fmt.Errorf("journey search: %w", err)
	}

	return decoded.Journeys, nil
}
