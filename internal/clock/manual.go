package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a test clock driven by explicit Advance calls. Callbacks fire
// on the advancing goroutine, in deadline order, which keeps timer-driven
// transitions serialized with the test body.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clk      *Manual
	deadline time.Time
	interval time.Duration // 0 for one-shot
	fn       func()
	stopped  bool
}

// NewManual returns a manual clock starting at an arbitrary fixed instant.
func NewManual() *Manual {
	return &Manual{now: time.Unix(1700000000, 0)}
}

// Now returns the clock's current instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Canceler {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{clk: m, deadline: m.now.Add(d), fn: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Repeat(interval time.Duration, f func()) Canceler {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{clk: m, deadline: m.now.Add(interval), interval: interval, fn: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every due callback in
// deadline order. Callbacks may schedule or cancel timers; newly scheduled
// timers that fall due within the same advance also fire.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		t := m.nextDueLocked(target)
		if t == nil {
			break
		}
		m.now = t.deadline
		if t.interval > 0 {
			t.deadline = t.deadline.Add(t.interval)
		} else {
			t.stopped = true
		}
		fn := t.fn
		// Release the lock while the callback runs so it can reschedule.
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = target
	m.compactLocked()
	m.mu.Unlock()
}

func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	var due *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.deadline.After(target) {
			continue
		}
		if due == nil || t.deadline.Before(due.deadline) {
			due = t
		}
	}
	return due
}

func (m *Manual) compactLocked() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].deadline.Before(live[j].deadline) })
	m.timers = live
}

func (t *manualTimer) Cancel() {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	t.stopped = true
}
