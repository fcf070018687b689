package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hailsim/internal/domain"
	"hailsim/internal/estimate"
	"hailsim/internal/geocode"
	"hailsim/internal/lifecycle"
)

// RideHandler handles HTTP requests for the passenger ride lifecycle.
type RideHandler struct {
	machine  *lifecycle.Machine
	geocoder geocode.Geocoder
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(machine *lifecycle.Machine, geocoder geocode.Geocoder) *RideHandler {
	return &RideHandler{machine: machine, geocoder: geocoder}
}

// EndpointRequest is one side of a route: a label plus optional
// pre-resolved coordinates. Labels without coordinates go through the
// geocoding chain.
type EndpointRequest struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// EstimateRequest is the HTTP request body for a fare estimate.
type EstimateRequest struct {
	Pickup      EndpointRequest `json:"pickup"`
	Destination EndpointRequest `json:"destination"`
}

// EstimateResponse carries the route plus a price per catalog ride type.
type EstimateResponse struct {
	Pickup      domain.Place                 `json:"pickup"`
	Destination domain.Place                 `json:"destination"`
	Route       domain.RouteEstimate         `json:"route"`
	Prices      map[domain.RideTypeID]string `json:"prices"`
	RideTypes   []domain.RideType            `json:"ride_types"`
}

// BookRequest is the HTTP request body for confirming a booking.
type BookRequest struct {
	Pickup      EndpointRequest   `json:"pickup"`
	Destination EndpointRequest   `json:"destination"`
	RideType    domain.RideTypeID `json:"ride_type"`
}

// PaymentMethodRequest selects how the booking is paid.
type PaymentMethodRequest struct {
	Method domain.PaymentMethod `json:"method"`
}

// FinishRequest picks the post-ride exit.
type FinishRequest struct {
	To string `json:"to"` // "feedback" or "home"
}

// FeedbackRequest is the HTTP request body for post-ride feedback.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Estimate resolves both endpoints and prices the route for every ride
// type. Unresolvable endpoints produce no estimate rather than a zero one.
func (h *RideHandler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, lifecycle.ErrMissingDestination)
		return
	}

	ctx := c.Request.Context()
	pickup, err := h.resolve(ctx, req.Pickup)
	if err != nil {
		respondError(c, err)
		return
	}
	destination, err := h.resolve(ctx, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}

	route, err := estimate.EstimateRoute(pickup.Coordinates, destination.Coordinates)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EstimateResponse{
		Pickup:      pickup,
		Destination: destination,
		Route:       route,
		Prices:      estimate.PriceTable(route.DistanceKm),
		RideTypes:   domain.RideTypes,
	})
}

// Book confirms pickup, destination and ride type and enters the booking
// state with a freshly computed price.
func (h *RideHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, lifecycle.ErrMissingDestination)
		return
	}

	rideType, ok := domain.RideTypeByID(req.RideType)
	if !ok {
		respondError(c, lifecycle.ErrUnknownRideType)
		return
	}

	ctx := c.Request.Context()
	pickup, err := h.resolve(ctx, req.Pickup)
	if err != nil {
		respondError(c, err)
		return
	}
	destination, err := h.resolve(ctx, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}

	route, err := estimate.EstimateRoute(pickup.Coordinates, destination.Coordinates)
	if err != nil {
		respondError(c, err)
		return
	}

	booking := domain.BookingRequest{
		Pickup:      pickup,
		Destination: destination,
		RideType:    rideType,
		Price:       estimate.FormatPrice(estimate.EstimatePrice(route.DistanceKm, rideType)),
		Route:       route,
	}
	if err := h.machine.Book(booking); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, h.machine.Snapshot())
}

// SelectPaymentMethod records the payment method for the pending booking.
func (h *RideHandler) SelectPaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, lifecycle.ErrInvalidPaymentMethod)
		return
	}
	if err := h.machine.SelectPaymentMethod(req.Method); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.machine.Snapshot())
}

// Pay starts the simulated payment.
func (h *RideHandler) Pay(c *gin.Context) {
	if err := h.machine.Pay(); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusAccepted, h.machine.Snapshot())
}

// Cancel aborts the journey.
func (h *RideHandler) Cancel(c *gin.Context) {
	if err := h.machine.Cancel(); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.machine.Snapshot())
}

// Finish leaves the completed ride, toward feedback or straight home.
func (h *RideHandler) Finish(c *gin.Context) {
	var req FinishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.To = "home"
	}

	var err error
	if req.To == "feedback" {
		err = h.machine.FinishToFeedback()
	} else {
		err = h.machine.FinishToHome()
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.machine.Snapshot())
}

// Feedback submits the post-ride rating and returns home.
func (h *RideHandler) Feedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, lifecycle.ErrInvalidRating)
		return
	}
	if err := h.machine.SubmitFeedback(c.Request.Context(), req.Rating, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.machine.Snapshot())
}

// Get returns the lifecycle snapshot.
func (h *RideHandler) Get(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.machine.Snapshot())
}

// resolve turns an endpoint request into a Place, geocoding the label
// when no coordinates were supplied. An unresolved address surfaces as a
// validation error; the geocoder itself never fails hard.
func (h *RideHandler) resolve(ctx context.Context, req EndpointRequest) (domain.Place, error) {
	coords := domain.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude}
	if !coords.IsZero() {
		label := req.Label
		if label == "" {
			addr, err := h.geocoder.ReverseGeocode(ctx, coords.Latitude, coords.Longitude)
			if err == nil && addr != "" {
				label = addr
			} else {
				label = fmt.Sprintf("%.4f, %.4f", coords.Latitude, coords.Longitude)
			}
		}
		return domain.Place{Label: label, Coordinates: coords}, nil
	}
	if req.Label == "" {
		return domain.Place{}, lifecycle.ErrMissingDestination
	}

	res, err := h.geocoder.GeocodeAddress(ctx, req.Label)
	if err != nil || res == nil {
		return domain.Place{}, lifecycle.ErrUnresolvedCoordinates
	}
	return domain.Place{Label: req.Label, Coordinates: res.Coordinates}, nil
}
