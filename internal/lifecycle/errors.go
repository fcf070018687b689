package lifecycle

import "errors"

var (
	// ErrNotAtHome is returned when booking starts from any state but Home.
	ErrNotAtHome = errors.New("a ride is already in progress")

	// ErrMissingPickup is returned when the pickup label is empty.
	ErrMissingPickup = errors.New("pickup location is required")

	// ErrMissingDestination is returned when the destination label is empty.
	ErrMissingDestination = errors.New("destination is required")

	// ErrUnresolvedCoordinates is returned when either endpoint has no
	// resolved coordinates.
	ErrUnresolvedCoordinates = errors.New("could not determine coordinates for pickup or destination")

	// ErrUnknownRideType is returned for a ride type outside the catalog.
	ErrUnknownRideType = errors.New("unknown ride type")

	// ErrNotBooking is returned when a booking-phase action arrives in
	// another state.
	ErrNotBooking = errors.New("no booking in progress")

	// ErrNoPaymentMethod makes the pay action a no-op until a method is
	// selected.
	ErrNoPaymentMethod = errors.New("select a payment method first")

	// ErrInvalidPaymentMethod is returned for an unrecognized method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrRideNotComplete is returned when an exit action arrives before
	// the destination countdown has finished.
	ErrRideNotComplete = errors.New("ride is not complete yet")

	// ErrNotInFeedback is returned when feedback arrives outside the
	// feedback state.
	ErrNotInFeedback = errors.New("not collecting feedback")

	// ErrInvalidRating is returned for a rating outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrNothingToCancel is returned when cancel arrives with no active
	// booking or ride.
	ErrNothingToCancel = errors.New("nothing to cancel")
)
