package domain

// RouteEstimate is derived data, recomputed whenever pickup or destination
// changes. PathPoints is a fabricated polyline, not a routed path.
type RouteEstimate struct {
	DistanceKm      float64       `json:"distance_km"`
	DurationMinutes int           `json:"duration_minutes"`
	PathPoints      []Coordinates `json:"path_points"`
}

// PaymentMethod represents how a passenger pays for a booking.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

// BookingRequest is created when a passenger confirms pickup and
// destination. It is consumed by the lifecycle and discarded after
// completion or cancellation; it is never persisted.
type BookingRequest struct {
	Pickup      Place         `json:"pickup"`
	Destination Place         `json:"destination"`
	RideType    RideType      `json:"ride_type"`
	Price       string        `json:"price"`
	Route       RouteEstimate `json:"route"`
}
