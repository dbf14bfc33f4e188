// Package debounce delays delivery of a value until it has stopped changing.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the most recent value passed to Set once delay has
// elapsed without another Set. Only the final value of a burst is delivered.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool
}

// New creates a debouncer calling fn with settled values. A delay of zero or
// less delivers synchronously from Set.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Set records v as the latest value and restarts the delay
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.fn(v)
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, v) })
	d.mu.Unlock()
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// a later Set or Stop superseded this timer
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether a value is waiting for its delay to elapse
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop discards any pending value. No value is delivered after Stop returns,
// except one whose delivery had already started.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
