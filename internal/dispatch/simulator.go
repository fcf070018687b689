package dispatch

import (
	"log/slog"
	"sync"

	"hailsim/internal/clock"
	"hailsim/internal/config"
	"hailsim/internal/domain"
	"hailsim/internal/observability"
)

// State is the driver-side session state.
type State string

const (
	StateOffline         State = "OFFLINE"
	StateOnlineIdle      State = "ONLINE_IDLE"
	StateRequestsPending State = "ONLINE_REQUESTS_PENDING"
	StateRideAccepted    State = "ONLINE_RIDE_ACCEPTED"
)

// EventType classifies simulator notifications.
type EventType string

const (
	EventWentOnline      EventType = "WENT_ONLINE"
	EventWentOffline     EventType = "WENT_OFFLINE"
	EventRequestsArrived EventType = "REQUESTS_ARRIVED"
	EventRideStarted     EventType = "RIDE_STARTED"
	EventPhaseChanged    EventType = "PHASE_CHANGED"
	EventRideCompleted   EventType = "RIDE_COMPLETED"
)

// Event is pushed to listeners (the websocket stream) on every change.
type Event struct {
	Type      EventType            `json:"type"`
	State     State                `json:"state"`
	Requests  []domain.RideRequest `json:"requests,omitempty"`
	Focused   string               `json:"focused,omitempty"`
	RideID    string               `json:"ride_id,omitempty"`
	Phase     domain.RidePhase     `json:"phase,omitempty"`
	Countdown int                  `json:"countdown,omitempty"`
}

// Simulator is the driver-side mock dispatcher. When the driver goes
// online it materializes the fixed request pool after a short delay;
// accepting a request starts the two-phase countdown that stands in for
// driving. Timer callbacks and user actions share one mutex, so no two
// transitions run concurrently.
type Simulator struct {
	clk    clock.Clock
	cfg    config.SimConfig
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	location domain.Coordinates
	pending  []domain.RideRequest
	focused  string
	accepted *domain.AcceptedRide

	arrivalTimer clock.Canceler
	ticker       clock.Canceler

	listener func(Event)
}

// NewSimulator creates a Simulator in the Offline state.
func NewSimulator(clk clock.Clock, cfg config.SimConfig, logger *slog.Logger) *Simulator {
	return &Simulator{
		clk:    clk,
		cfg:    cfg,
		logger: logger,
		state:  StateOffline,
	}
}

// SetListener registers a callback invoked after each change, outside the
// simulator's lock.
func (s *Simulator) SetListener(fn func(Event)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// GoOnline starts a driver session at the given location. The mock
// request pool arrives after the configured dispatch delay.
func (s *Simulator) GoOnline(location domain.Coordinates) error {
	if location.IsZero() {
		return ErrNoDriverLocation
	}

	s.mu.Lock()
	if s.state != StateOffline {
		s.mu.Unlock()
		return ErrAlreadyOnline
	}
	s.state = StateOnlineIdle
	s.location = location
	s.arrivalTimer = s.clk.AfterFunc(s.cfg.DispatchDelay, s.deliverRequests)
	s.mu.Unlock()

	observability.DriversOnline.Inc()
	s.logger.Info("driver online", "lat", location.Latitude, "lng", location.Longitude)
	s.emit(Event{Type: EventWentOnline, State: StateOnlineIdle})
	return nil
}

func (s *Simulator) deliverRequests() {
	s.mu.Lock()
	if s.state != StateOnlineIdle {
		s.mu.Unlock()
		return
	}
	s.arrivalTimer = nil
	s.pending = append([]domain.RideRequest(nil), MockRideRequests...)
	s.focused = s.pending[0].ID
	s.state = StateRequestsPending
	requests := append([]domain.RideRequest(nil), s.pending...)
	focused := s.focused
	s.mu.Unlock()

	s.logger.Info("ride requests delivered", "count", len(requests), "focused", focused)
	s.emit(Event{Type: EventRequestsArrived, State: StateRequestsPending, Requests: requests, Focused: focused})
}

// GoOffline ends the session: pending requests, focus, any accepted ride
// and every timer are dropped.
func (s *Simulator) GoOffline() error {
	s.mu.Lock()
	if s.state == StateOffline {
		s.mu.Unlock()
		return ErrAlreadyOffline
	}
	s.resetLocked()
	s.mu.Unlock()

	observability.DriversOnline.Dec()
	s.logger.Info("driver offline")
	s.emit(Event{Type: EventWentOffline, State: StateOffline})
	return nil
}

// Accept converts the identified request into the session's AcceptedRide
// and discards every other pending request. At most one AcceptedRide
// exists per session; a lookup miss changes nothing.
func (s *Simulator) Accept(id string) error {
	s.mu.Lock()
	if s.accepted != nil {
		s.mu.Unlock()
		return ErrRideInProgress
	}
	if s.state != StateRequestsPending {
		s.mu.Unlock()
		return ErrNoPendingRequests
	}

	var req *domain.RideRequest
	for i := range s.pending {
		if s.pending[i].ID == id {
			req = &s.pending[i]
			break
		}
	}
	if req == nil {
		s.mu.Unlock()
		return ErrRequestNotFound
	}

	s.accepted = &domain.AcceptedRide{
		Request:              *req,
		Phase:                domain.PhasePickup,
		PickupCountdown:      s.cfg.PickupCountdown,
		DestinationCountdown: s.cfg.DestinationCountdown,
	}
	s.pending = nil
	s.focused = ""
	s.state = StateRideAccepted
	s.ticker = s.clk.Repeat(s.cfg.TickInterval, s.tick)
	s.mu.Unlock()

	observability.RequestsAcceptedTotal.Inc()
	s.logger.Info("ride accepted", "id", id)
	s.emit(Event{Type: EventRideStarted, State: StateRideAccepted, RideID: id, Phase: domain.PhasePickup})
	return nil
}

// Reject drops one pending request. When the rejected request was
// focused, focus moves to the next remaining request, or to none.
func (s *Simulator) Reject(id string) error {
	s.mu.Lock()
	if s.state != StateRequestsPending {
		s.mu.Unlock()
		return ErrNoPendingRequests
	}

	idx := -1
	for i := range s.pending {
		if s.pending[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrRequestNotFound
	}

	s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
	if s.focused == id {
		if len(s.pending) > 0 {
			s.focused = s.pending[0].ID
		} else {
			s.focused = ""
		}
	}
	if len(s.pending) == 0 {
		s.state = StateOnlineIdle
	}
	s.mu.Unlock()

	observability.RequestsRejectedTotal.Inc()
	s.logger.Info("ride rejected", "id", id)
	return nil
}

// tick decrements the active phase countdown. Pickup at zero flips the
// phase; destination at zero completes the ride, clears the AcceptedRide,
// resets both countdowns for the next ride and tears the ticker down.
func (s *Simulator) tick() {
	s.mu.Lock()
	if s.accepted == nil {
		s.mu.Unlock()
		return
	}

	var ev *Event
	switch s.accepted.Phase {
	case domain.PhasePickup:
		s.accepted.PickupCountdown--
		if s.accepted.PickupCountdown <= 0 {
			s.accepted.Phase = domain.PhaseDestination
			ev = &Event{
				Type:      EventPhaseChanged,
				State:     StateRideAccepted,
				RideID:    s.accepted.Request.ID,
				Phase:     domain.PhaseDestination,
				Countdown: s.accepted.DestinationCountdown,
			}
		}
	case domain.PhaseDestination:
		s.accepted.DestinationCountdown--
		if s.accepted.DestinationCountdown <= 0 {
			id := s.accepted.Request.ID
			s.accepted = nil
			s.state = StateOnlineIdle
			s.stopTimersLocked()
			ev = &Event{Type: EventRideCompleted, State: StateOnlineIdle, RideID: id}
		}
	}
	s.mu.Unlock()

	if ev != nil {
		if ev.Type == EventRideCompleted {
			observability.RidesCompletedTotal.Inc()
			s.logger.Info("ride completed", "id", ev.RideID)
		}
		s.emit(*ev)
	}
}

func (s *Simulator) resetLocked() {
	s.stopTimersLocked()
	s.state = StateOffline
	s.location = domain.Coordinates{}
	s.pending = nil
	s.focused = ""
	s.accepted = nil
}

func (s *Simulator) stopTimersLocked() {
	if s.arrivalTimer != nil {
		s.arrivalTimer.Cancel()
		s.arrivalTimer = nil
	}
	if s.ticker != nil {
		s.ticker.Cancel()
		s.ticker = nil
	}
}

func (s *Simulator) emit(ev Event) {
	s.mu.Lock()
	fn := s.listener
	s.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}
