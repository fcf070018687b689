package estimate

import (
	"math"
	"testing"

	"hailsim/internal/domain"
)

var (
	sunwayUniversity = domain.Coordinates{Latitude: 3.0669, Longitude: 101.6035}
	sunwayPyramid    = domain.Coordinates{Latitude: 3.0728, Longitude: 101.6092}
	klcc             = domain.Coordinates{Latitude: 3.1588, Longitude: 101.7142}
)

func TestEstimateRouteInflatesDirectDistance(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		name         string
		origin, dest domain.Coordinates
	}{
		{"short hop", sunwayUniversity, sunwayPyramid},
		{"cross town", sunwayUniversity, klcc},
		{"reverse", klcc, sunwayPyramid},
	}

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			direct := Haversine(tc.origin, tc.dest)
			route, err := EstimateRoute(tc.origin, tc.dest)
			if err != nil {
				t.Fatalf("EstimateRoute: %v", err)
			}
			if route.DistanceKm < direct {
				t.Errorf("estimated distance %.3f km below direct distance %.3f km", route.DistanceKm, direct)
			}
			if got, want := route.DistanceKm, direct*1.3; math.Abs(got-want) > 1e-9 {
				t.Errorf("distance = %.6f, want %.6f", got, want)
			}
			if got, want := route.DurationMinutes, int(math.Round(route.DistanceKm)); got != want {
				t.Errorf("duration = %d min, want %d", got, want)
			}
		})
	}
}

func TestEstimateRoutePathEndpoints(t *testing.T) {
	t.Parallel()

	route, err := EstimateRoute(sunwayUniversity, klcc)
	if err != nil {
		t.Fatalf("EstimateRoute: %v", err)
	}
	// The jittered interior is advisory; only the endpoints are exact.
	if len(route.PathPoints) != 7 {
		t.Fatalf("expected 7 path points, got %d", len(route.PathPoints))
	}
	if route.PathPoints[0] != sunwayUniversity {
		t.Errorf("path does not start at origin: %+v", route.PathPoints[0])
	}
	if route.PathPoints[len(route.PathPoints)-1] != klcc {
		t.Errorf("path does not end at destination: %+v", route.PathPoints[len(route.PathPoints)-1])
	}
}

func TestEstimateRouteMissingCoordinates(t *testing.T) {
	t.Parallel()

	if _, err := EstimateRoute(domain.Coordinates{}, klcc); err != ErrMissingCoordinates {
		t.Errorf("zero origin: got %v, want ErrMissingCoordinates", err)
	}
	if _, err := EstimateRoute(klcc, domain.Coordinates{}); err != ErrMissingCoordinates {
		t.Errorf("zero destination: got %v, want ErrMissingCoordinates", err)
	}
}

func TestEstimatePrice(t *testing.T) {
	t.Parallel()

	economy, _ := domain.RideTypeByID(domain.RideTypeEconomy)
	premium, _ := domain.RideTypeByID(domain.RideTypePremium)
	family, _ := domain.RideTypeByID(domain.RideTypeFamily)

	tests := []struct {
		name       string
		distanceKm float64
		rideType   domain.RideType
		want       string
	}{
		{"economy zero distance", 0, economy, "RM5.00"},
		{"economy 10km", 10, economy, "RM15.00"},
		{"premium 10km", 10, premium, "RM20.40"},
		{"family 10km", 10, family, "RM35.00"},
		{"economy fractional", 1.5, economy, "RM6.50"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatPrice(EstimatePrice(tc.distanceKm, tc.rideType))
			if got != tc.want {
				t.Errorf("EstimatePrice(%v, %s) = %s, want %s", tc.distanceKm, tc.rideType.Name, got, tc.want)
			}
		})
	}
}

func TestMultiplierOrdering(t *testing.T) {
	t.Parallel()

	economy, _ := domain.RideTypeByID(domain.RideTypeEconomy)
	premium, _ := domain.RideTypeByID(domain.RideTypePremium)
	family, _ := domain.RideTypeByID(domain.RideTypeFamily)

	if economy.Multiplier != 1.0 {
		t.Errorf("economy multiplier = %v, want 1.0", economy.Multiplier)
	}
	if !(economy.Multiplier < premium.Multiplier && premium.Multiplier < family.Multiplier) {
		t.Errorf("multipliers not strictly increasing: %v %v %v",
			economy.Multiplier, premium.Multiplier, family.Multiplier)
	}
	if premium.Multiplier != 1.2 || family.Multiplier != 1.75 {
		t.Errorf("unexpected multipliers: premium=%v family=%v", premium.Multiplier, family.Multiplier)
	}
}

func TestPriceFromDistanceText(t *testing.T) {
	t.Parallel()

	economy, _ := domain.RideTypeByID(domain.RideTypeEconomy)

	if got := PriceFromDistanceText("1.5 km", economy); got != "RM6.50" {
		t.Errorf("parsed price = %s, want RM6.50", got)
	}
	// Unparseable text falls back to the bare base fare.
	if got := PriceFromDistanceText("unknown", economy); got != "RM5.00" {
		t.Errorf("fallback price = %s, want RM5.00", got)
	}
	if got := PriceFromDistanceText("", economy); got != "RM5.00" {
		t.Errorf("empty text price = %s, want RM5.00", got)
	}
}

func TestPriceTableCoversCatalog(t *testing.T) {
	t.Parallel()

	table := PriceTable(10)
	if len(table) != len(domain.RideTypes) {
		t.Fatalf("price table has %d entries, want %d", len(table), len(domain.RideTypes))
	}
	if table[domain.RideTypeEconomy] != "RM15.00" {
		t.Errorf("economy = %s, want RM15.00", table[domain.RideTypeEconomy])
	}
}
