package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hawi-me/eld-trip-planner-backend/internal/api/dto"
	"github.com/hawi-me/eld-trip-planner-backend/internal/hos"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
	"github.com/hawi-me/eld-trip-planner-backend/internal/services"
)

// TripHandler exposes trip planning and retrieval endpoints.
type TripHandler struct {
	Repo      ports.TripRepository
	Geocoder  ports.Geocoder
	Provider  ports.RouteProvider
	Scheduler *hos.Scheduler
}

// Collection serves the /trips endpoint: POST plans and persists a new trip,
// GET lists stored trips without their schedules.
func (h *TripHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost}, ", "))
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	depart := time.Now().UTC()
	if req.DepartureTime != nil {
		depart = *req.DepartureTime
	}

	trip, err := services.PlanTrip(r.Context(), services.PlanTripRequest{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		CycleUsedHours:  req.CurrentCycleUsedHours,
		DepartAt:        depart,
	}, h.Geocoder, h.Provider, h.Scheduler)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Repo.SaveTrip(r.Context(), trip); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromTrip(trip))
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.FromTrip(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Item serves GET /trips/{id}, returning one trip with its full schedule.
func (h *TripHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/trips/")
	if rawID == "" || strings.Contains(rawID, "/") {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromTrip(trip))
}
