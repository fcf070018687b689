package estimate

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"hailsim/internal/domain"
)

// ErrMissingCoordinates is returned when either endpoint is unresolved.
// Callers must treat price and ETA as unknown in that case, not zero.
var ErrMissingCoordinates = errors.New("missing coordinates for route estimate")

const (
	earthRadiusKm = 6371.0
	// Fixed inflation applied to the great-circle distance to approximate
	// road winding.
	roadWindingFactor = 1.3
	// Distance-based fare component, RM per kilometre.
	perKmFare = 1.0
)

// Haversine returns the great-circle distance between two points in
// kilometres.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLng := deg2rad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// EstimateRoute computes distance, duration and a synthetic path between
// two coordinates. Duration is one minute per kilometre of the inflated
// distance. The path is jittered randomly, so its exact shape is advisory.
func EstimateRoute(origin, destination domain.Coordinates) (domain.RouteEstimate, error) {
	if origin.IsZero() || destination.IsZero() {
		return domain.RouteEstimate{}, ErrMissingCoordinates
	}

	distance := Haversine(origin, destination) * roadWindingFactor
	return domain.RouteEstimate{
		DistanceKm:      distance,
		DurationMinutes: int(math.Round(distance)),
		PathPoints:      syntheticPath(origin, destination),
	}, nil
}

// syntheticPath fabricates a plausible polyline: one axis-aligned segment,
// one turn, then a few jittered points toward the destination. It is not a
// routed path.
func syntheticPath(origin, destination domain.Coordinates) []domain.Coordinates {
	midLat := (origin.Latitude + destination.Latitude) / 2
	midLng := (origin.Longitude + destination.Longitude) / 2

	points := make([]domain.Coordinates, 0, 7)
	points = append(points, origin)
	points = append(points, domain.Coordinates{
		Latitude:  origin.Latitude,
		Longitude: midLng + rand.Float64()*0.005,
	})
	points = append(points, domain.Coordinates{
		Latitude:  midLat + rand.Float64()*0.005,
		Longitude: midLng + rand.Float64()*0.005,
	})
	for i := 0; i < 3; i++ {
		ratio := float64(i+2) / 5
		points = append(points, domain.Coordinates{
			Latitude:  midLat + (destination.Latitude-midLat)*ratio + (rand.Float64()-0.5)*0.006,
			Longitude: midLng + (destination.Longitude-midLng)*ratio + (rand.Float64()-0.5)*0.006,
		})
	}
	return append(points, destination)
}

// EstimatePrice computes the fare for a distance and ride type:
// (base fare + distance at RM1/km) scaled by the type multiplier.
func EstimatePrice(distanceKm float64, rideType domain.RideType) float64 {
	return (rideType.BaseFare + distanceKm*perKmFare) * rideType.Multiplier
}

// FormatPrice renders a fare as currency with two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("RM%.2f", amount)
}

// ParseDistanceKm extracts the kilometre value from a display string such
// as "1.5 km". The second return is false when the text cannot be parsed.
func ParseDistanceKm(text string) (float64, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// PriceFromDistanceText prices a ride type from a distance display string,
// falling back to the bare base fare when the text cannot be parsed.
func PriceFromDistanceText(text string, rideType domain.RideType) string {
	d, ok := ParseDistanceKm(text)
	if !ok {
		return FormatPrice(rideType.BaseFare)
	}
	return FormatPrice(EstimatePrice(d, rideType))
}

// PriceTable prices every catalog ride type for one route distance.
func PriceTable(distanceKm float64) map[domain.RideTypeID]string {
	table := make(map[domain.RideTypeID]string, len(domain.RideTypes))
	for _, rt := range domain.RideTypes {
		table[rt.ID] = FormatPrice(EstimatePrice(distanceKm, rt))
	}
	return table
}
