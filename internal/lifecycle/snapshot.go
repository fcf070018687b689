package lifecycle

import "hailsim/internal/domain"

// Snapshot is a read model of the machine for handlers and map views.
type Snapshot struct {
	State                State                  `json:"state"`
	Booking              *domain.BookingRequest `json:"booking,omitempty"`
	PaymentMethod        domain.PaymentMethod   `json:"payment_method,omitempty"`
	Phase                domain.RidePhase       `json:"phase,omitempty"`
	PickupCountdown      int                    `json:"pickup_countdown,omitempty"`
	DestinationCountdown int                    `json:"destination_countdown,omitempty"`
	TripComplete         bool                   `json:"trip_complete"`
	Driver               *domain.User           `json:"driver,omitempty"`
}

// Snapshot returns a copy of the current machine state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State:                m.state,
		PaymentMethod:        m.paymentMethod,
		Phase:                m.phase,
		PickupCountdown:      m.pickupLeft,
		DestinationCountdown: m.destLeft,
		TripComplete:         m.tripComplete,
	}
	if m.booking != nil {
		b := *m.booking
		snap.Booking = &b
	}
	if m.state == StateDriverAssigned || m.state == StateFeedback {
		d := AssignedDriver
		snap.Driver = &d
	}
	return snap
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
