package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/hawi-me/eld-trip-planner-backend/internal/api/dto"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

// RouteHandler exposes standalone route calculation, useful for previewing a
// leg on the map before committing to a full trip plan.
type RouteHandler struct {
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
}

func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CalculateRouteRequest

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

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	ctx := r.Context()

	originCoords, err := h.Geocoder.Geocode(ctx, origin)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	destCoords, err := h.Geocoder.Geocode(ctx, destination)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	route, err := h.Provider.GetRoute(ctx, originCoords, destCoords)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateRouteResponse{
		DistanceMiles: route.DistanceMiles,
		DurationHours: route.DurationHours,
		Polyline:      route.Polyline,
	})
}
