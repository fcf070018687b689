package dispatch

import "hailsim/internal/domain"

// MockRideRequests is the fixed pool delivered shortly after a driver goes
// online. There is no real passenger on the other end.
var MockRideRequests = []domain.RideRequest{
	{
		ID:                     "req-1",
		PickupLocation:         "Sunway University",
		PickupCoordinates:      domain.Coordinates{Latitude: 3.0669, Longitude: 101.6035},
		Destination:            "Sunway Pyramid",
		DestinationCoordinates: domain.Coordinates{Latitude: 3.0728, Longitude: 101.6092},
		Distance:               "1.5 km",
		Duration:               "8 min",
		Fare:                   "RM12.00",
		PassengerName:          "John",
		PassengerRating:        4.7,
	},
	{
		ID:                     "req-2",
		PickupLocation:         "KLCC",
		PickupCoordinates:      domain.Coordinates{Latitude: 3.1588, Longitude: 101.7142},
		Destination:            "KL Tower",
		DestinationCoordinates: domain.Coordinates{Latitude: 3.1525, Longitude: 101.7033},
		Distance:               "2.3 km",
		Duration:               "12 min",
		Fare:                   "RM15.50",
		PassengerName:          "Sarah",
		PassengerRating:        4.9,
	},
}
