package identity

import (
	"context"
	"errors"

	"hailsim/internal/domain"
)

// ErrNotFound is returned when no user exists for the given email.
var ErrNotFound = errors.New("user not found")

// Store is the identity persistence collaborator. Records are keyed by
// email; a single pointer marks the currently logged-in user. Both must
// survive process restarts.
type Store interface {
	GetUser(ctx context.Context, email string) (*domain.User, error)
	SaveUser(ctx context.Context, user *domain.User) error
	UserExists(ctx context.Context, email string) (bool, error)

	SetCurrentUser(ctx context.Context, email string) error
	// CurrentUser returns the pointer, or "" when nobody is logged in.
	CurrentUser(ctx context.Context) (string, error)
	ClearCurrentUser(ctx context.Context) error
}
