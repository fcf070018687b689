package geocode

import (
	"context"
	"errors"
	"testing"
)

func TestStaticResolvesKnownLandmarks(t *testing.T) {
	t.Parallel()

	g := NewStatic()
	ctx := context.Background()

	res, err := g.GeocodeAddress(ctx, "KLCC")
	if err != nil {
		t.Fatalf("GeocodeAddress: %v", err)
	}
	if res == nil {
		t.Fatal("KLCC should resolve")
	}
	if res.Coordinates.Latitude != 3.1588 || res.Coordinates.Longitude != 101.7142 {
		t.Errorf("KLCC coordinates = %+v", res.Coordinates)
	}

	// Matching is case-insensitive and tolerates partial input.
	if res, _ := g.GeocodeAddress(ctx, "sunway pyramid"); res == nil {
		t.Error("lowercase landmark should resolve")
	}
	if res, _ := g.GeocodeAddress(ctx, "Sunway Pyramid, Selangor"); res == nil {
		t.Error("landmark with suffix should resolve")
	}
}

func TestStaticUnknownAddressIsNilNotError(t *testing.T) {
	t.Parallel()

	g := NewStatic()
	res, err := g.GeocodeAddress(context.Background(), "Somewhere Else Entirely")
	if err != nil {
		t.Fatalf("unresolved address must not error: %v", err)
	}
	if res != nil {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestStaticReverseGeocode(t *testing.T) {
	t.Parallel()

	g := NewStatic()
	addr, err := g.ReverseGeocode(context.Background(), 3.1589, 101.7143)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if addr == "" {
		t.Error("coordinates near KLCC should reverse geocode")
	}

	addr, _ = g.ReverseGeocode(context.Background(), 0, 0)
	if addr != "" {
		t.Errorf("open ocean reverse geocoded to %q", addr)
	}
}

type failingGeocoder struct{}

func (failingGeocoder) GeocodeAddress(ctx context.Context, text string) (*Result, error) {
	return nil, errors.New("provider down")
}

func (failingGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return "", errors.New("provider down")
}

func TestChainFallsThroughFailures(t *testing.T) {
	t.Parallel()

	chain := NewChain(failingGeocoder{}, NewStatic())
	res, err := chain.GeocodeAddress(context.Background(), "KL Tower")
	if err != nil {
		t.Fatalf("chain must absorb provider errors: %v", err)
	}
	if res == nil {
		t.Fatal("fallback provider should have resolved KL Tower")
	}

	// Every provider failing is still not an error, just unresolved.
	dead := NewChain(failingGeocoder{}, failingGeocoder{})
	res, err = dead.GeocodeAddress(context.Background(), "KL Tower")
	if err != nil || res != nil {
		t.Errorf("dead chain = (%+v, %v), want (nil, nil)", res, err)
	}
}
