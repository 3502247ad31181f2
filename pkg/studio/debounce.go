package studio

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long edits must pause before the preview image
// follows the shareable URL.
const DefaultQuietPeriod = 200 * time.Millisecond

type stopper interface {
	Stop() bool
}

type scheduleFunc func(d time.Duration, fn func()) stopper

func afterFunc(d time.Duration, fn func()) stopper {
	return time.AfterFunc(d, fn)
}

// Debouncer runs fn once a quiet period has passed since the last Trigger.
// At most one countdown is pending: Trigger replaces it and Stop cancels it
// for good.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	fn       func()
	schedule scheduleFunc
	pending  stopper
	seq      uint64
	stopped  bool
}

// NewDebouncer returns a Debouncer calling fn after delay of inactivity.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return newDebouncer(delay, fn, afterFunc)
}

func newDebouncer(delay time.Duration, fn func(), schedule scheduleFunc) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, fn: fn, schedule: schedule}
}

// Trigger (re)starts the countdown.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.pending != nil {
		d.pending.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = d.schedule(d.delay, func() { d.fire(seq) })
}

// fire runs fn only if seq is still the latest countdown. A timer that
// already started when Stop or Trigger ran is discarded here.
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Pending reports whether a countdown is outstanding.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels the outstanding countdown; later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.seq++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
