package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Catalog ports.CatalogRepository
	Sources services.Sources
	Options services.PlanOptions
	Weather ports.WeatherProvider

	RateLimit RateLimit
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	catalogHandler := &handlers.CatalogHandler{
		Repo: deps.Catalog,
		City: deps.Sources.Destination,
	}
	planHandler := &handlers.PlanHandler{
		Sources: deps.Sources,
		Options: deps.Options,
	}
	weatherHandler := &handlers.WeatherHandler{
		Provider: deps.Weather,
		City:     deps.Sources.Destination,
		Position: deps.Sources.DestinationPosition,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/catalog", catalogHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/transport/compare", planHandler.CompareTransport)
	mux.HandleFunc("/weather", weatherHandler.Forecast)

	var h http.Handler = mux
	h = loggingMiddleware(h)
	h = rateLimitMiddleware(deps.RateLimit)(h)
	h = requestIDMiddleware(h)
	return h
}
