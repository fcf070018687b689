package domain

// RidePhase is the sub-state of an accepted ride.
type RidePhase string

const (
	PhasePickup      RidePhase = "EN_ROUTE_TO_PICKUP"
	PhaseDestination RidePhase = "EN_ROUTE_TO_DESTINATION"
)

// RideRequest is a driver-side incoming request. Requests are materialized
// by the dispatch simulator when the driver goes online and removed on
// accept or reject; the whole set is cleared when the driver goes offline.
type RideRequest struct {
	ID                     string      `json:"id"`
	PickupLocation         string      `json:"pickup_location"`
	PickupCoordinates      Coordinates `json:"pickup_coordinates"`
	Destination            string      `json:"destination"`
	DestinationCoordinates Coordinates `json:"destination_coordinates"`
	Distance               string      `json:"distance"`
	Duration               string      `json:"duration"`
	Fare                   string      `json:"fare"`
	PassengerName          string      `json:"passenger_name"`
	PassengerRating        float64     `json:"passenger_rating"`
}

// AcceptedRide is owned exclusively by the active driver session. At most
// one exists per session at a time.
type AcceptedRide struct {
	Request              RideRequest `json:"request"`
	Phase                RidePhase   `json:"phase"`
	PickupCountdown      int         `json:"pickup_countdown"`
	DestinationCountdown int         `json:"destination_countdown"`
}

// FeedbackRecord is created at submission time and handed straight to the
// feedback sink; nothing is kept locally.
type FeedbackRecord struct {
	ID         string `json:"id"`
	DriverName string `json:"driver_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}
