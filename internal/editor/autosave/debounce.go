package autosave

import (
	"sync"
	"time"
)

// Debouncer collapses rapid updates of a value into a single callback fired
// once the value has been stable for the configured delay. Any number of Set
// calls inside the window are absorbed; only the final value is delivered.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	stopped bool
}

// NewDebouncer constructs a Debouncer that invokes fn after delay of quiet.
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Set records a new value and restarts the quiet-period timer.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.timer = nil
	d.mu.Unlock()
	d.fn(v)
}

// Stop cancels any pending delivery. The debouncer cannot be reused.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
