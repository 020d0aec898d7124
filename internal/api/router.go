package api

import (
	"net/http"

	"github.com/hawi-me/eld-trip-planner-backend/internal/api/handlers"
	"github.com/hawi-me/eld-trip-planner-backend/internal/hos"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.TripRepository,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
	scheduler *hos.Scheduler,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Geocoder: geocoder,
		Provider: provider,
	}
	tripHandler := &handlers.TripHandler{
		Repo:      repo,
		Geocoder:  geocoder,
		Provider:  provider,
		Scheduler: scheduler,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/calculate", routeHandler.Calculate)
	mux.HandleFunc("/trips", tripHandler.Collection)
	mux.HandleFunc("/trips/", tripHandler.Item)

	return requestIDMiddleware(loggingMiddleware(mux))
}
