package mapview

import (
	"hailsim/internal/dispatch"
	"hailsim/internal/domain"
	"hailsim/internal/lifecycle"
)

// MarkerRole tells the renderer what a marker stands for.
type MarkerRole string

const (
	RolePickup      MarkerRole = "pickup"
	RoleDestination MarkerRole = "destination"
	RoleDriver      MarkerRole = "driver"
)

// Marker is one labelled point on the map.
type Marker struct {
	Coordinates domain.Coordinates `json:"coordinates"`
	Label       string             `json:"label"`
	Role        MarkerRole         `json:"role"`
}

// Polyline is the drawn route.
type Polyline struct {
	Points      []domain.Coordinates `json:"points"`
	StrokeColor string               `json:"stroke_color"`
	StrokeWidth int                  `json:"stroke_width"`
}

// View is everything a map widget needs to draw one screen: a viewport,
// markers and an optional polyline. The widget reports taps; it returns
// nothing else.
type View struct {
	Region   domain.Region `json:"region"`
	Markers  []Marker      `json:"markers"`
	Polyline *Polyline     `json:"polyline,omitempty"`
}

const (
	routeStrokeColor = "#4A89F3"
	routeStrokeWidth = 4
)

// FromLifecycle builds the passenger view. Before a booking exists only
// the viewport is set.
func FromLifecycle(snap lifecycle.Snapshot, fallback domain.Region) View {
	view := View{Region: fallback}
	if snap.Booking == nil {
		return view
	}

	b := snap.Booking
	view.Region = regionCovering(b.Pickup.Coordinates, b.Destination.Coordinates)
	view.Markers = []Marker{
		{Coordinates: b.Pickup.Coordinates, Label: b.Pickup.Label, Role: RolePickup},
		{Coordinates: b.Destination.Coordinates, Label: b.Destination.Label, Role: RoleDestination},
	}
	if snap.Driver != nil {
		view.Markers = append(view.Markers, Marker{
			Coordinates: b.Pickup.Coordinates,
			Label:       snap.Driver.Name,
			Role:        RoleDriver,
		})
	}
	if len(b.Route.PathPoints) > 0 {
		view.Polyline = &Polyline{
			Points:      b.Route.PathPoints,
			StrokeColor: routeStrokeColor,
			StrokeWidth: routeStrokeWidth,
		}
	}
	return view
}

// FromDispatch builds the driver view: the driver's own position plus the
// focused or accepted request's endpoints.
func FromDispatch(snap dispatch.Snapshot, fallback domain.Region) View {
	view := View{Region: fallback}
	if snap.Location.IsZero() {
		return view
	}

	view.Region = domain.Region{Center: snap.Location, LatitudeDelta: 0.0922, LongitudeDelta: 0.0421}
	view.Markers = []Marker{{Coordinates: snap.Location, Label: "You", Role: RoleDriver}}

	var req *domain.RideRequest
	if snap.Accepted != nil {
		req = &snap.Accepted.Request
	} else {
		for i := range snap.Pending {
			if snap.Pending[i].ID == snap.Focused {
				req = &snap.Pending[i]
				break
			}
		}
	}
	if req != nil {
		view.Region = regionCovering(req.PickupCoordinates, req.DestinationCoordinates)
		view.Markers = append(view.Markers,
			Marker{Coordinates: req.PickupCoordinates, Label: req.PickupLocation, Role: RolePickup},
			Marker{Coordinates: req.DestinationCoordinates, Label: req.Destination, Role: RoleDestination},
		)
	}
	return view
}

// regionCovering fits the viewport around two points with a little margin.
func regionCovering(a, b domain.Coordinates) domain.Region {
	latDelta := abs(a.Latitude-b.Latitude)*2 + 0.02
	lngDelta := abs(a.Longitude-b.Longitude)*2 + 0.02
	return domain.Region{
		Center: domain.Coordinates{
			Latitude:  (a.Latitude + b.Latitude) / 2,
			Longitude: (a.Longitude + b.Longitude) / 2,
		},
		LatitudeDelta:  latDelta,
		LongitudeDelta: lngDelta,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
