package clock

import (
	"sync"
	"time"
)

// Canceler stops a scheduled callback. Cancel is idempotent and safe to
// call from the callback itself.
type Canceler interface {
	Cancel()
}

// Clock schedules callbacks. Every timer handed out must be cancelled by
// the owner when its phase ends; an orphaned timer firing after its owner
// is gone is a bug, so owners hold the Canceler, not the clock.
type Clock interface {
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Canceler
	// Repeat runs f every interval until cancelled.
	Repeat(interval time.Duration, f func()) Canceler
}

// Real is the production clock backed by the time package.
type Real struct{}

// NewReal returns the production clock.
func NewReal() *Real { return &Real{} }

func (*Real) AfterFunc(d time.Duration, f func()) Canceler {
	t := time.AfterFunc(d, f)
	return &realTimer{t: t}
}

func (*Real) Repeat(interval time.Duration, f func()) Canceler {
	r := &realRepeater{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f()
			case <-r.stop:
				return
			}
		}
	}()
	return r
}

type realTimer struct {
	once sync.Once
	t    *time.Timer
}

func (rt *realTimer) Cancel() {
	rt.once.Do(func() { rt.t.Stop() })
}

type realRepeater struct {
	once sync.Once
	stop chan struct{}
}

func (rr *realRepeater) Cancel() {
	rr.once.Do(func() { close(rr.stop) })
}
