package identity

import (
	"context"
	"sync"
	"sync/atomic"

	"hailsim/internal/domain"
)

// MemoryStore is an in-memory Store used in tests and when no backend is
// configured. The error-injection fields and call counters exist for the
// session gate tests.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	current string

	ClearCallCount int32

	SaveError    error
	ClearError   error
	CurrentError error
	// FailClearOnce makes the first ClearCurrentUser call silently leave
	// the pointer in place, exercising the logout verify-and-retry path.
	FailClearOnce bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]domain.User)}
}

func (m *MemoryStore) GetUser(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	u := user
	return &u, nil
}

func (m *MemoryStore) SaveUser(ctx context.Context, user *domain.User) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = *user
	return nil
}

func (m *MemoryStore) UserExists(ctx context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[email]
	return ok, nil
}

func (m *MemoryStore) SetCurrentUser(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = email
	return nil
}

func (m *MemoryStore) CurrentUser(ctx context.Context) (string, error) {
	if m.CurrentError != nil {
		return "", m.CurrentError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, nil
}

func (m *MemoryStore) ClearCurrentUser(ctx context.Context) error {
	atomic.AddInt32(&m.ClearCallCount, 1)
	if m.ClearError != nil {
		return m.ClearError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailClearOnce {
		m.FailClearOnce = false
		return nil
	}
	m.current = ""
	return nil
}

// UserCount reports how many records the store holds.
func (m *MemoryStore) UserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
