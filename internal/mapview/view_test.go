package mapview

import (
	"encoding/json"
	"strings"
	"testing"

	"hailsim/internal/dispatch"
	"hailsim/internal/domain"
	"hailsim/internal/lifecycle"
)

var kl = domain.Region{
	Center:         domain.Coordinates{Latitude: 3.1390, Longitude: 101.6869},
	LatitudeDelta:  0.0922,
	LongitudeDelta: 0.0421,
}

func testBooking() *domain.BookingRequest {
	return &domain.BookingRequest{
		Pickup: domain.Place{
			Label:       "Sunway University",
			Coordinates: domain.Coordinates{Latitude: 3.0673, Longitude: 101.6037},
		},
		Destination: domain.Place{
			Label:       "KLCC",
			Coordinates: domain.Coordinates{Latitude: 3.1578, Longitude: 101.7123},
		},
		Route: domain.RouteEstimate{
			PathPoints: []domain.Coordinates{
				{Latitude: 3.0673, Longitude: 101.6037},
				{Latitude: 3.1578, Longitude: 101.7123},
			},
		},
	}
}

func TestFromLifecycleBeforeBooking(t *testing.T) {
	t.Parallel()

	view := FromLifecycle(lifecycle.Snapshot{State: lifecycle.StateHome}, kl)

	if view.Region != kl {
		t.Errorf("expected fallback region, got %+v", view.Region)
	}
	if len(view.Markers) != 0 {
		t.Errorf("expected no markers, got %d", len(view.Markers))
	}
	if view.Polyline != nil {
		t.Error("expected no polyline before a booking exists")
	}
}

func TestFromLifecycleWithBooking(t *testing.T) {
	t.Parallel()

	snap := lifecycle.Snapshot{State: lifecycle.StateBooking, Booking: testBooking()}
	view := FromLifecycle(snap, kl)

	if len(view.Markers) != 2 {
		t.Fatalf("expected pickup and destination markers, got %d", len(view.Markers))
	}
	if view.Markers[0].Role != RolePickup || view.Markers[1].Role != RoleDestination {
		t.Errorf("unexpected marker roles: %s, %s", view.Markers[0].Role, view.Markers[1].Role)
	}
	if view.Polyline == nil {
		t.Fatal("expected a route polyline")
	}
	if view.Polyline.StrokeColor != "#4A89F3" || view.Polyline.StrokeWidth != 4 {
		t.Errorf("unexpected polyline style: %s width %d", view.Polyline.StrokeColor, view.Polyline.StrokeWidth)
	}

	// The viewport must cover both endpoints.
	b := testBooking()
	if view.Region.LatitudeDelta < b.Destination.Coordinates.Latitude-b.Pickup.Coordinates.Latitude {
		t.Errorf("viewport too small: %+v", view.Region)
	}
}

func TestFromLifecycleDriverMarker(t *testing.T) {
	t.Parallel()

	driver := lifecycle.AssignedDriver
	snap := lifecycle.Snapshot{
		State:   lifecycle.StateDriverAssigned,
		Booking: testBooking(),
		Driver:  &driver,
	}
	view := FromLifecycle(snap, kl)

	if len(view.Markers) != 3 {
		t.Fatalf("expected 3 markers with a driver assigned, got %d", len(view.Markers))
	}
	if view.Markers[2].Role != RoleDriver {
		t.Errorf("expected driver marker, got %s", view.Markers[2].Role)
	}
}

func TestFromDispatchOffline(t *testing.T) {
	t.Parallel()

	view := FromDispatch(dispatch.Snapshot{State: dispatch.StateOffline}, kl)

	if view.Region != kl {
		t.Errorf("expected fallback region, got %+v", view.Region)
	}
	if len(view.Markers) != 0 {
		t.Errorf("expected no markers offline, got %d", len(view.Markers))
	}
}

func TestFromDispatchFocusedRequest(t *testing.T) {
	t.Parallel()

	pending := append([]domain.RideRequest(nil), dispatch.MockRideRequests...)
	snap := dispatch.Snapshot{
		State:    dispatch.StateRequestsPending,
		Location: domain.Coordinates{Latitude: 3.0, Longitude: 101.0},
		Pending:  pending,
		Focused:  pending[0].ID,
	}
	view := FromDispatch(snap, kl)

	if len(view.Markers) != 3 {
		t.Fatalf("expected driver, pickup and destination markers, got %d", len(view.Markers))
	}
	if view.Markers[0].Role != RoleDriver {
		t.Errorf("expected the driver's own marker first, got %s", view.Markers[0].Role)
	}
	if view.Markers[1].Label != pending[0].PickupLocation {
		t.Errorf("expected focused request pickup %q, got %q", pending[0].PickupLocation, view.Markers[1].Label)
	}
}

func TestGeoJSONRender(t *testing.T) {
	t.Parallel()

	snap := lifecycle.Snapshot{State: lifecycle.StateBooking, Booking: testBooking()}
	view := FromLifecycle(snap, kl)

	body, err := GeoJSON{}.Render(view)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("invalid GeoJSON: %v", err)
	}
	if doc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection, got %q", doc.Type)
	}
	// Two markers plus the route line.
	if len(doc.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(doc.Features))
	}
	if doc.Features[2].Geometry.Type != "LineString" {
		t.Errorf("expected LineString last, got %q", doc.Features[2].Geometry.Type)
	}
}

func TestStaticURLRender(t *testing.T) {
	t.Parallel()

	snap := lifecycle.Snapshot{State: lifecycle.StateBooking, Booking: testBooking()}
	view := FromLifecycle(snap, kl)

	body, err := StaticURL{APIKey: "test-key"}.Render(view)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := string(body)
	if !strings.HasPrefix(u, "https://maps.googleapis.com/maps/api/staticmap?") {
		t.Errorf("unexpected URL prefix: %s", u)
	}
	if !strings.Contains(u, "key=test-key") {
		t.Error("expected API key in URL")
	}
	if !strings.Contains(u, "path=") {
		t.Error("expected route path in URL")
	}
}
