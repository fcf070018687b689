package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"hailsim/internal/domain"
	"hailsim/internal/identity"
)

// Session identifies the logged-in user for the life of the process. It is
// returned by Login and held by the gate; there is no ambient global.
type Session struct {
	Email string
	Name  string
	Role  domain.Role
}

// Gate resolves who is authenticated and which role they hold. The entry
// point of the app branches on the role: drivers land on the dispatch
// simulator, passengers on the booking lifecycle.
type Gate struct {
	store  identity.Store
	logger *slog.Logger

	mu      sync.RWMutex
	session *Session
}

// NewGate creates a Gate on the given identity store.
func NewGate(store identity.Store, logger *slog.Logger) *Gate {
	return &Gate{store: store, logger: logger}
}

// Login authenticates by exact password compare against the stored record
// and records the current-user pointer.
func (g *Gate) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := g.store.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Password != password {
		return nil, ErrBadCredentials
	}

	if err := g.store.SetCurrentUser(ctx, email); err != nil {
		return nil, err
	}

	s := &Session{Email: user.Email, Name: user.Name, Role: user.Role}
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()

	g.logger.Info("user logged in", "email", email, "role", user.Role)
	return s, nil
}

// Signup creates a passenger account and logs it in. Driver accounts are
// only ever pre-seeded.
func (g *Gate) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if name == "" {
		return nil, ErrMissingName
	}

	exists, err := g.store.UserExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user := &domain.User{Name: name, Email: email, Password: password, Role: domain.RolePassenger}
	if err := g.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := g.store.SetCurrentUser(ctx, email); err != nil {
		return nil, err
	}

	s := &Session{Email: email, Name: name, Role: domain.RolePassenger}
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()

	g.logger.Info("user signed up", "email", email)
	return s, nil
}

// Logout clears the session pointer. It verifies the pointer is gone and
// retries the clear once if not. Store errors are logged but never
// returned: the caller is always logged out from the UI's perspective.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()

	if err := g.store.ClearCurrentUser(ctx); err != nil {
		g.logger.Warn("clearing session pointer failed", "error", err)
	}

	// Best-effort verification; a surviving pointer gets one more clear.
	email, err := g.store.CurrentUser(ctx)
	if err != nil {
		g.logger.Warn("verifying logout failed", "error", err)
		return
	}
	if email != "" {
		if err := g.store.ClearCurrentUser(ctx); err != nil {
			g.logger.Warn("retrying session pointer clear failed", "error", err)
		}
	}
}

// IsAuthenticated reports whether a session pointer exists.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	g.mu.RLock()
	s := g.session
	g.mu.RUnlock()
	if s != nil {
		return true
	}
	email, err := g.store.CurrentUser(ctx)
	return err == nil && email != ""
}

// CurrentRole resolves the logged-in role, restoring the in-process
// session from the store pointer after a restart. The second return is
// false when nobody is logged in.
func (g *Gate) CurrentRole(ctx context.Context) (domain.Role, bool) {
	if s := g.currentSession(ctx); s != nil {
		return s.Role, true
	}
	return "", false
}

// CurrentUser returns the full record of the logged-in user.
func (g *Gate) CurrentUser(ctx context.Context) (*domain.User, error) {
	s := g.currentSession(ctx)
	if s == nil {
		return nil, identity.ErrNotFound
	}
	return g.store.GetUser(ctx, s.Email)
}

func (g *Gate) currentSession(ctx context.Context) *Session {
	g.mu.RLock()
	s := g.session
	g.mu.RUnlock()
	if s != nil {
		return s
	}

	email, err := g.store.CurrentUser(ctx)
	if err != nil || email == "" {
		return nil
	}
	user, err := g.store.GetUser(ctx, email)
	if err != nil {
		return nil
	}

	s = &Session{Email: user.Email, Name: user.Name, Role: user.Role}
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()
	return s
}
