package app

import (
	"sync"
	"time"
)

// DefaultDebounce is the settle time of text and range inputs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs the last scheduled function once calls have stopped for
// the configured duration.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	gen      uint64
	pending  func()
}

func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn, replacing any call still pending.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.duration, func() { d.fire(gen) })
}

// fire runs the pending function unless it was replaced or cancelled after
// the timer went off.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Flush runs the pending call now instead of waiting for the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.reset()
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Immediate cancels the pending call and runs fn right away.
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) reset() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = nil
}
