package timewindow

import (
	"sync"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
)

const tickInterval = time.Second

// Latch is a one-shot guard for expiry callbacks. The countdown re-evaluates
// every second, but the callback it protects must run at most once per arm.
type latchState int

const (
	latchArmed latchState = iota
	latchFired
)

type Latch struct {
	mu    sync.Mutex
	state latchState
}

// TryFire reports whether the caller won the latch. Only the first caller
// after arming does.
func (l *Latch) TryFire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == latchFired {
		return false
	}
	l.state = latchFired
	return true
}

func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = latchArmed
}

// Countdown drives a window gate on a 1-second tick while a view displays
// it. Stop releases the timer; nothing keeps ticking after that.
type Countdown struct {
	clk    clock.Clock
	target time.Time
	before time.Duration
	after  time.Duration
	onTick func(Result)

	mu      sync.Mutex
	timer   clock.Timer
	running bool
}

func NewCountdown(clk clock.Clock, target time.Time, before, after time.Duration, onTick func(Result)) *Countdown {
	return &Countdown{clk: clk, target: target, before: before, after: after, onTick: onTick}
}

// Start evaluates immediately and then once per second until Stop.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()
	c.tick()
}

func (c *Countdown) tick() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	res := Evaluate(c.clk.Now(), c.target, c.before, c.after)
	c.timer = c.clk.AfterFunc(tickInterval, c.tick)
	c.mu.Unlock()

	c.onTick(res)
}

func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// DeadlineWatch is the limbo variant: ticks report remaining time and the
// expiry callback fires exactly once even though evaluation repeats every
// second past the deadline.
type DeadlineWatch struct {
	clk      clock.Clock
	deadline time.Time
	onTick   func(Deadline)
	onExpire func()
	latch    Latch

	mu      sync.Mutex
	timer   clock.Timer
	running bool
}

func NewDeadlineWatch(clk clock.Clock, deadline time.Time, onTick func(Deadline), onExpire func()) *DeadlineWatch {
	return &DeadlineWatch{clk: clk, deadline: deadline, onTick: onTick, onExpire: onExpire}
}

func (w *DeadlineWatch) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()
	w.tick()
}

func (w *DeadlineWatch) tick() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	d := EvaluateDeadline(w.clk.Now(), w.deadline)
	w.timer = w.clk.AfterFunc(tickInterval, w.tick)
	w.mu.Unlock()

	if w.onTick != nil {
		w.onTick(d)
	}
	if d.State == Expired && w.onExpire != nil && w.latch.TryFire() {
		w.onExpire()
	}
}

func (w *DeadlineWatch) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
