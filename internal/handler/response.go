package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hailsim/internal/dispatch"
	"hailsim/internal/estimate"
	"hailsim/internal/identity"
	"hailsim/internal/lifecycle"
	"hailsim/internal/location"
	"hailsim/internal/session"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps engine errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found
	case errors.Is(err, identity.ErrNotFound),
		errors.Is(err, session.ErrUserNotFound),
		errors.Is(err, dispatch.ErrRequestNotFound):
		return http.StatusNotFound

	// Credential errors
	case errors.Is(err, session.ErrBadCredentials):
		return http.StatusUnauthorized

	// Permission errors
	case errors.Is(err, location.ErrPermissionDenied):
		return http.StatusForbidden

	// Validation errors
	case errors.Is(err, session.ErrMissingCredentials),
		errors.Is(err, session.ErrMissingName),
		errors.Is(err, lifecycle.ErrMissingPickup),
		errors.Is(err, lifecycle.ErrMissingDestination),
		errors.Is(err, lifecycle.ErrUnresolvedCoordinates),
		errors.Is(err, lifecycle.ErrUnknownRideType),
		errors.Is(err, lifecycle.ErrInvalidPaymentMethod),
		errors.Is(err, lifecycle.ErrInvalidRating),
		errors.Is(err, estimate.ErrMissingCoordinates),
		errors.Is(err, dispatch.ErrNoDriverLocation):
		return http.StatusBadRequest

	// Conflicts: the action is legal, the state is not
	case errors.Is(err, session.ErrEmailTaken),
		errors.Is(err, lifecycle.ErrNotAtHome),
		errors.Is(err, lifecycle.ErrNotBooking),
		errors.Is(err, lifecycle.ErrNoPaymentMethod),
		errors.Is(err, lifecycle.ErrRideNotComplete),
		errors.Is(err, lifecycle.ErrNotInFeedback),
		errors.Is(err, lifecycle.ErrNothingToCancel),
		errors.Is(err, dispatch.ErrAlreadyOnline),
		errors.Is(err, dispatch.ErrAlreadyOffline),
		errors.Is(err, dispatch.ErrNoPendingRequests),
		errors.Is(err, dispatch.ErrRideInProgress):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
