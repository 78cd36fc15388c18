package sync

import (
	"sync"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
)

type debounceState int

const (
	debounceIdle debounceState = iota
	debounceScheduled
	debounceFired
)

// Debouncer coalesces bursts of refresh triggers into one trailing-edge
// invocation per fixed window. It is an explicit Idle → Scheduled → Fired
// machine over an injectable clock, so tests drive it without sleeping.
type Debouncer struct {
	mu    sync.Mutex
	state debounceState
	delay time.Duration
	clk   clock.Clock
	fn    func()
	timer clock.Timer
}

func NewDebouncer(clk clock.Clock, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{clk: clk, delay: delay, fn: fn}
}

// Trigger schedules the trailing-edge call. Triggers landing while one is
// already scheduled coalesce into it; the window is fixed, not extended.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	if d.state == debounceScheduled {
		d.mu.Unlock()
		return
	}
	d.state = debounceScheduled
	d.timer = d.clk.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

// Flush bypasses the delay for user-initiated refreshes. Any scheduled
// window is cancelled and the function runs immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.state = debounceFired
	d.mu.Unlock()

	d.fn()

	d.mu.Lock()
	// fn実行中にTriggerが来ていたらScheduledのまま残す
	if d.state == debounceFired {
		d.state = debounceIdle
	}
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.state != debounceScheduled {
		d.mu.Unlock()
		return
	}
	d.state = debounceFired
	d.timer = nil
	d.mu.Unlock()

	d.fn()

	d.mu.Lock()
	if d.state == debounceFired {
		d.state = debounceIdle
	}
	d.mu.Unlock()
}

// Stop cancels any scheduled call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.state = debounceIdle
}
