package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"hailsim/internal/clock"
	"hailsim/internal/config"
	"hailsim/internal/domain"
	"hailsim/internal/observability"
)

// State is a screen-level phase of one passenger journey.
type State string

const (
	StateHome            State = "HOME"
	StateBooking         State = "BOOKING"
	StatePayment         State = "PAYMENT"
	StatePaymentComplete State = "PAYMENT_COMPLETE"
	StateDriverAssigned  State = "DRIVER_ASSIGNED"
	StateFeedback        State = "FEEDBACK"
)

// EventType classifies lifecycle notifications.
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventPaymentStarted   EventType = "PAYMENT_STARTED"
	EventPaymentComplete  EventType = "PAYMENT_COMPLETE"
	EventDriverAssigned   EventType = "DRIVER_ASSIGNED"
	EventPhaseChanged     EventType = "PHASE_CHANGED"
	EventRideCompleted    EventType = "RIDE_COMPLETED"
	EventFeedbackSent     EventType = "FEEDBACK_SENT"
	EventCancelled        EventType = "CANCELLED"
)

// Event is emitted on every transition.
type Event struct {
	Type  EventType        `json:"type"`
	State State            `json:"state"`
	Phase domain.RidePhase `json:"phase,omitempty"`
}

// FeedbackSink receives completed feedback records. Nothing is kept in the
// machine after hand-off.
type FeedbackSink interface {
	Submit(ctx context.Context, record domain.FeedbackRecord) error
}

// AssignedDriver is the fixed driver card shown once payment completes.
// The demo has no real matching; every passenger gets the same driver.
var AssignedDriver = domain.User{
	Name:        "Ahmad Rahman",
	Email:       "driver1@test.com",
	Role:        domain.RoleDriver,
	Rating:      4.8,
	Car:         "Toyota Vios",
	PlateNumber: "WXY 1234",
	Phone:       "+60 12-345 6789",
}

// Machine is the authoritative ride lifecycle for one passenger session:
// Home -> Booking -> Payment -> PaymentComplete -> DriverAssigned ->
// Feedback -> Home, with cancellation back to Home. All transitions,
// user- and timer-triggered alike, are serialized on one mutex.
type Machine struct {
	clk    clock.Clock
	cfg    config.SimConfig
	sink   FeedbackSink
	logger *slog.Logger

	mu            sync.Mutex
	state         State
	booking       *domain.BookingRequest
	paymentMethod domain.PaymentMethod
	phase         domain.RidePhase
	pickupLeft    int
	destLeft      int
	tripComplete  bool

	gatewayTimer clock.Canceler
	advanceTimer clock.Canceler
	ticker       clock.Canceler

	listener func(Event)
}

// NewMachine creates a Machine in the Home state.
func NewMachine(clk clock.Clock, cfg config.SimConfig, sink FeedbackSink, logger *slog.Logger) *Machine {
	return &Machine{
		clk:    clk,
		cfg:    cfg,
		sink:   sink,
		logger: logger,
		state:  StateHome,
	}
}

// SetListener registers a callback invoked after each transition. The
// callback runs outside the machine's lock.
func (m *Machine) SetListener(fn func(Event)) {
	m.mu.Lock()
	m.listener = fn
	m.mu.Unlock()
}

// Book validates pickup and destination and moves Home -> Booking. The
// booking request carries the price and route computed by the estimator.
func (m *Machine) Book(booking domain.BookingRequest) error {
	m.mu.Lock()
	if m.state != StateHome {
		m.mu.Unlock()
		return ErrNotAtHome
	}
	if booking.Pickup.Label == "" {
		m.mu.Unlock()
		return ErrMissingPickup
	}
	if booking.Destination.Label == "" {
		m.mu.Unlock()
		return ErrMissingDestination
	}
	if booking.Pickup.Coordinates.IsZero() || booking.Destination.Coordinates.IsZero() {
		m.mu.Unlock()
		return ErrUnresolvedCoordinates
	}
	if _, ok := domain.RideTypeByID(booking.RideType.ID); !ok {
		m.mu.Unlock()
		return ErrUnknownRideType
	}

	m.booking = &booking
	m.state = StateBooking
	m.mu.Unlock()

	observability.BookingsTotal.Inc()
	m.logger.Info("booking confirmed",
		"pickup", booking.Pickup.Label,
		"destination", booking.Destination.Label,
		"ride_type", booking.RideType.ID,
		"price", booking.Price)
	m.emit(Event{Type: EventBookingConfirmed, State: StateBooking})
	return nil
}

// SelectPaymentMethod records the method for the pending booking. The pay
// action stays disabled until a method is chosen.
func (m *Machine) SelectPaymentMethod(method domain.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateBooking {
		return ErrNotBooking
	}
	switch method {
	case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodWallet:
		m.paymentMethod = method
		return nil
	default:
		return ErrInvalidPaymentMethod
	}
}

// Pay starts the simulated payment. The gateway round trip is a fixed
// delay and always succeeds; a second fixed delay then auto-advances to
// the driver-assigned state.
func (m *Machine) Pay() error {
	m.mu.Lock()
	if m.state != StateBooking {
		m.mu.Unlock()
		return ErrNotBooking
	}
	if m.paymentMethod == "" {
		m.mu.Unlock()
		return ErrNoPaymentMethod
	}

	m.state = StatePayment
	m.gatewayTimer = m.clk.AfterFunc(m.cfg.PaymentGatewayDelay, m.completePayment)
	m.mu.Unlock()

	m.emit(Event{Type: EventPaymentStarted, State: StatePayment})
	return nil
}

func (m *Machine) completePayment() {
	m.mu.Lock()
	if m.state != StatePayment {
		m.mu.Unlock()
		return
	}
	m.state = StatePaymentComplete
	m.gatewayTimer = nil
	m.advanceTimer = m.clk.AfterFunc(m.cfg.PaymentAdvanceDelay, m.assignDriver)
	m.mu.Unlock()

	m.logger.Info("payment complete", "method", m.paymentMethod)
	m.emit(Event{Type: EventPaymentComplete, State: StatePaymentComplete})
}

func (m *Machine) assignDriver() {
	m.mu.Lock()
	if m.state != StatePaymentComplete {
		m.mu.Unlock()
		return
	}
	m.state = StateDriverAssigned
	m.advanceTimer = nil
	m.phase = domain.PhasePickup
	m.pickupLeft = m.cfg.PickupCountdown
	m.destLeft = m.cfg.DestinationCountdown
	m.tripComplete = false
	m.ticker = m.clk.Repeat(m.cfg.TickInterval, m.tick)
	m.mu.Unlock()

	m.logger.Info("driver assigned", "driver", AssignedDriver.Name)
	m.emit(Event{Type: EventDriverAssigned, State: StateDriverAssigned, Phase: domain.PhasePickup})
}

// tick decrements whichever countdown is active. Pickup reaching zero
// flips the phase; destination reaching zero completes the ride and tears
// the ticker down.
func (m *Machine) tick() {
	m.mu.Lock()
	if m.state != StateDriverAssigned || m.tripComplete {
		m.mu.Unlock()
		return
	}

	var ev *Event
	switch m.phase {
	case domain.PhasePickup:
		m.pickupLeft--
		if m.pickupLeft <= 0 {
			m.phase = domain.PhaseDestination
			ev = &Event{Type: EventPhaseChanged, State: StateDriverAssigned, Phase: domain.PhaseDestination}
		}
	case domain.PhaseDestination:
		m.destLeft--
		if m.destLeft <= 0 {
			m.tripComplete = true
			m.stopTimersLocked()
			ev = &Event{Type: EventRideCompleted, State: StateDriverAssigned, Phase: domain.PhaseDestination}
		}
	}
	m.mu.Unlock()

	if ev != nil {
		if ev.Type == EventRideCompleted {
			m.logger.Info("ride completed")
		}
		m.emit(*ev)
	}
}

// FinishToFeedback takes the post-ride exit into the feedback screen.
func (m *Machine) FinishToFeedback() error {
	m.mu.Lock()
	if m.state != StateDriverAssigned || !m.tripComplete {
		m.mu.Unlock()
		return ErrRideNotComplete
	}
	m.state = StateFeedback
	m.mu.Unlock()
	return nil
}

// FinishToHome skips feedback and terminates the journey.
func (m *Machine) FinishToHome() error {
	m.mu.Lock()
	if m.state != StateDriverAssigned || !m.tripComplete {
		m.mu.Unlock()
		return ErrRideNotComplete
	}
	m.resetLocked()
	m.mu.Unlock()
	return nil
}

// SubmitFeedback hands the record to the sink and returns to Home. The
// comment is optional; submission always succeeds once the rating is in
// range.
func (m *Machine) SubmitFeedback(ctx context.Context, rating int, comment string) error {
	m.mu.Lock()
	if m.state != StateFeedback {
		m.mu.Unlock()
		return ErrNotInFeedback
	}
	if rating < 1 || rating > 5 {
		m.mu.Unlock()
		return ErrInvalidRating
	}
	record := domain.FeedbackRecord{
		ID:         uuid.New().String(),
		DriverName: AssignedDriver.Name,
		Rating:     rating,
		Comment:    comment,
	}
	m.resetLocked()
	m.mu.Unlock()

	if err := m.sink.Submit(ctx, record); err != nil {
		// Hand-off is best effort; the journey still ends.
		m.logger.Warn("feedback hand-off failed", "error", err)
	}
	m.emit(Event{Type: EventFeedbackSent, State: StateHome})
	return nil
}

// Cancel aborts the journey and returns to Home. It is legal from
// Booking, Payment (before completion) and DriverAssigned; any running
// countdown is abandoned and its timer stopped.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	switch m.state {
	case StateBooking, StatePayment, StateDriverAssigned:
		m.resetLocked()
	default:
		m.mu.Unlock()
		return ErrNothingToCancel
	}
	m.mu.Unlock()

	observability.RidesCancelledTotal.Inc()
	m.logger.Info("ride cancelled")
	m.emit(Event{Type: EventCancelled, State: StateHome})
	return nil
}

// resetLocked returns the machine to Home and tears down every timer so
// nothing fires after the journey is gone.
func (m *Machine) resetLocked() {
	m.stopTimersLocked()
	m.state = StateHome
	m.booking = nil
	m.paymentMethod = ""
	m.phase = ""
	m.pickupLeft = 0
	m.destLeft = 0
	m.tripComplete = false
}

func (m *Machine) stopTimersLocked() {
	if m.gatewayTimer != nil {
		m.gatewayTimer.Cancel()
		m.gatewayTimer = nil
	}
	if m.advanceTimer != nil {
		m.advanceTimer.Cancel()
		m.advanceTimer = nil
	}
	if m.ticker != nil {
		m.ticker.Cancel()
		m.ticker = nil
	}
}

func (m *Machine) emit(ev Event) {
	m.mu.Lock()
	fn := m.listener
	m.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}
