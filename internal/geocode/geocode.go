package geocode

import (
	"context"
	"strings"

	"hailsim/internal/domain"
)

// Result is a resolved address.
type Result struct {
	Coordinates      domain.Coordinates
	FormattedAddress string
}

// Geocoder resolves free-text addresses. Implementations return (nil, nil)
// or ("", nil) when the input cannot be resolved; callers must treat nil
// as "unresolved", never as an error.
type Geocoder interface {
	GeocodeAddress(ctx context.Context, text string) (*Result, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Chain tries each geocoder in order and returns the first resolution.
// A provider error only moves the chain along; total failure is (nil, nil).
type Chain struct {
	providers []Geocoder
}

// NewChain builds a fallback chain.
func NewChain(providers ...Geocoder) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) GeocodeAddress(ctx context.Context, text string) (*Result, error) {
	for _, p := range c.providers {
		res, err := p.GeocodeAddress(ctx, text)
		if err == nil && res != nil {
			return res, nil
		}
	}
	return nil, nil
}

func (c *Chain) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	for _, p := range c.providers {
		addr, err := p.ReverseGeocode(ctx, lat, lng)
		if err == nil && addr != "" {
			return addr, nil
		}
	}
	return "", nil
}

// Static resolves a fixed table of Kuala Lumpur landmarks. It stands in
// for the device-level provider and keeps the demo working without any
// network access.
type Static struct {
	landmarks []landmark
}

type landmark struct {
	name   string
	coords domain.Coordinates
}

// NewStatic builds the landmark table.
func NewStatic() *Static {
	return &Static{landmarks: []landmark{
		{"Sunway University", domain.Coordinates{Latitude: 3.0669, Longitude: 101.6035}},
		{"Sunway Pyramid", domain.Coordinates{Latitude: 3.0728, Longitude: 101.6092}},
		{"KLCC", domain.Coordinates{Latitude: 3.1588, Longitude: 101.7142}},
		{"KL Tower", domain.Coordinates{Latitude: 3.1525, Longitude: 101.7033}},
		{"KL Sentral", domain.Coordinates{Latitude: 3.1337, Longitude: 101.6864}},
		{"Mid Valley Megamall", domain.Coordinates{Latitude: 3.1177, Longitude: 101.6774}},
		{"Batu Caves", domain.Coordinates{Latitude: 3.2379, Longitude: 101.6831}},
	}}
}

func (s *Static) GeocodeAddress(ctx context.Context, text string) (*Result, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil, nil
	}
	for _, lm := range s.landmarks {
		name := strings.ToLower(lm.name)
		if name == needle || strings.Contains(name, needle) || strings.Contains(needle, name) {
			return &Result{
				Coordinates:      lm.coords,
				FormattedAddress: lm.name + ", Kuala Lumpur, Malaysia",
			}, nil
		}
	}
	return nil, nil
}

func (s *Static) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	// Closest landmark within a small box counts as a match.
	const box = 0.01
	for _, lm := range s.landmarks {
		if abs(lm.coords.Latitude-lat) < box && abs(lm.coords.Longitude-lng) < box {
			return lm.name + ", Kuala Lumpur, Malaysia", nil
		}
	}
	return "", nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
