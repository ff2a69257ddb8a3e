// Package debounce rate-limits bursty triggers: rapid calls collapse into one
// invocation of the wrapped function after a quiet window, carrying the last
// call's payload. The teardown contract matters as much as the delay: once
// Cancel returns, the function is guaranteed not to fire again.
package debounce

import (
	"sync"
	"time"
)

type Debouncer[T any] struct {
	mu       sync.Mutex
	wait     time.Duration
	fn       func(T)
	timer    *time.Timer
	pending  T
	armed    bool
	canceled bool
}

// New wraps fn. wait is the quiescence window; values at or below zero fall
// back to a minimal window rather than firing synchronously.
func New[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	if wait <= 0 {
		wait = time.Millisecond
	}
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Call schedules an invocation with v, superseding any pending one. The last
// value passed before the window elapses is the one delivered.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.canceled {
		return
	}
	d.pending = v
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fire)
}

// Cancel drops any pending invocation and retires the debouncer. Safe to call
// more than once.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.canceled = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush fires a pending invocation immediately instead of waiting out the
// window. No-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.canceled || !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	v := d.pending
	d.mu.Unlock()
	d.fn(v)
}
