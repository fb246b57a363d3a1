// Package watch regenerates output whenever the input file changes.
package watch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Debouncer runs fn once a burst of triggers has been quiet for the delay.
// Every Trigger replaces the pending request; a timer only runs fn if its
// token is still the latest when it fires. Runs of fn never overlap.
type Debouncer struct {
	delay  time.Duration
	fn     func()
	latest atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
	runMu sync.Mutex
}

// NewDebouncer creates a Debouncer that calls fn after delay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn, superseding any request that has not fired yet.
func (d *Debouncer) Trigger() {
	token := d.latest.Add(1)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if d.latest.Load() != token {
			return
		}
		d.runMu.Lock()
		defer d.runMu.Unlock()
		d.fn()
	})
}

// Stop drops the pending request, if any.
func (d *Debouncer) Stop() {
	d.latest.Add(1)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
