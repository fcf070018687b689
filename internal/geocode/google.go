package geocode

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"hailsim/internal/domain"
)

// Google resolves addresses through the Google Geocoding API. API errors
// are logged and reported as "unresolved" so the chain can fall through.
type Google struct {
	client *maps.Client
	logger *slog.Logger
}

// NewGoogle creates a Google geocoder with the given API key.
func NewGoogle(apiKey string, logger *slog.Logger) (*Google, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Google{client: client, logger: logger}, nil
}

func (g *Google) GeocodeAddress(ctx context.Context, text string) (*Result, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: text,
		Region:  "my", // bias results to Malaysia
	})
	if err != nil {
		g.logger.Warn("geocoding request failed", "address", text, "error", err)
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	loc := results[0].Geometry.Location
	return &Result{
		Coordinates:      domain.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng},
		FormattedAddress: results[0].FormattedAddress,
	}, nil
}

func (g *Google) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		g.logger.Warn("reverse geocoding request failed", "lat", lat, "lng", lng, "error", err)
		return "", nil
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].FormattedAddress, nil
}
