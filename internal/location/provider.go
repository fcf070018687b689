package location

import (
	"context"
	"errors"

	"hailsim/internal/domain"
)

var (
	// ErrPermissionDenied is surfaced as a dismissible message; dependent
	// features fall back to the default region instead of failing.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrUnavailable is returned when no position can be produced.
	ErrUnavailable = errors.New("unable to get current location")
)

// Provider is the device-location collaborator.
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

// Static is a Provider with a fixed position, standing in for a real
// device. Denied or positionless configurations exercise the fallback
// paths.
type Static struct {
	Granted  bool
	Position domain.Coordinates
}

// NewStatic returns a granted provider at the given position.
func NewStatic(position domain.Coordinates) *Static {
	return &Static{Granted: true, Position: position}
}

func (s *Static) RequestPermission(ctx context.Context) (bool, error) {
	return s.Granted, nil
}

func (s *Static) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if !s.Granted {
		return domain.Coordinates{}, ErrPermissionDenied
	}
	if s.Position.IsZero() {
		return domain.Coordinates{}, ErrUnavailable
	}
	return s.Position, nil
}

// Resolve returns the provider's position, degrading to the fallback
// region's center when permission is denied or no fix is available.
func Resolve(ctx context.Context, p Provider, fallback domain.Region) domain.Coordinates {
	granted, err := p.RequestPermission(ctx)
	if err != nil || !granted {
		return fallback.Center
	}
	pos, err := p.CurrentPosition(ctx)
	if err != nil {
		return fallback.Center
	}
	return pos
}
