package domain

import "errors"

// ErrInvalidInput is returned when a planning request fails validation
// (non-positive leg distance/duration, cycle hours outside [0,70]).
// The API layer maps it to HTTP 422.
var ErrInvalidInput = errors.New("invalid input")

// ErrInfeasibleTrip is returned when no compliant schedule exists within the
// bounded simulation horizon, e.g. the 8-day cycle is already exhausted.
var ErrInfeasibleTrip = errors.New("infeasible trip")

// ErrRouteUnavailable is returned by routing adapters when the external
// geocoding or routing collaborator cannot produce a result. It is passed
// through the core unmodified.
var ErrRouteUnavailable = errors.New("route unavailable")

// ErrNotFound is returned by repositories when the requested trip does not
// exist. The API layer maps it to HTTP 404.
var ErrNotFound = errors.New("not found")
