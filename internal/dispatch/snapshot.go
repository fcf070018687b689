package dispatch

import "hailsim/internal/domain"

// Snapshot is a read model of the simulator for handlers and map views.
type Snapshot struct {
	State    State                `json:"state"`
	Location domain.Coordinates   `json:"location"`
	Pending  []domain.RideRequest `json:"pending,omitempty"`
	Focused  string               `json:"focused,omitempty"`
	Accepted *domain.AcceptedRide `json:"accepted,omitempty"`
}

// Snapshot returns a copy of the current simulator state.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Location: s.location,
		Focused:  s.focused,
	}
	if len(s.pending) > 0 {
		snap.Pending = append([]domain.RideRequest(nil), s.pending...)
	}
	if s.accepted != nil {
		ride := *s.accepted
		snap.Accepted = &ride
	}
	return snap
}

// State returns the current simulator state.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
