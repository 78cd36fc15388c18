package timewindow

import "time"

// WindowStatus gates a deadline-sensitive action relative to its target
// time: arrival buttons, quote submission, job start.
type WindowStatus string

const (
	TooEarly  WindowStatus = "too_early"
	Available WindowStatus = "available"
	TooLate   WindowStatus = "too_late"
)

type Result struct {
	Status    WindowStatus
	Remaining time.Duration
}

// Evaluate is a pure function of now. Boundary ticks count as inside the
// window: at exactly target-before the action opens, at exactly
// target+after it is still allowed.
func Evaluate(now, target time.Time, before, after time.Duration) Result {
	if d := target.Sub(now); d > before {
		return Result{Status: TooEarly, Remaining: d - before}
	}
	if d := now.Sub(target); d > after {
		return Result{Status: TooLate}
	}
	return Result{Status: Available, Remaining: target.Add(after).Sub(now)}
}

type DeadlineState string

const (
	Pending DeadlineState = "pending"
	Expired DeadlineState = "expired"
)

type Deadline struct {
	State     DeadlineState
	Remaining time.Duration
}

// EvaluateDeadline is the limbo-timeout variant: a booking waiting on a
// counterparty is pending until limbo_timeout_at passes.
func EvaluateDeadline(now, deadline time.Time) Deadline {
	if d := deadline.Sub(now); d > 0 {
		return Deadline{State: Pending, Remaining: d}
	}
	return Deadline{State: Expired}
}
