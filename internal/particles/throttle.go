package particles

import "time"

// Throttle rate-limits a stream of values without timers. A value offered
// after the delay has elapsed is applied at once; earlier values wait in a
// single slot, newest wins, until Flush sees the delay has passed.
type Throttle[T any] struct {
	delay   time.Duration
	apply   func(T)
	last    time.Time
	pending T
	waiting bool
}

// NewThrottle returns a throttle calling apply at most once per delay.
func NewThrottle[T any](delay time.Duration, apply func(T)) *Throttle[T] {
	return &Throttle[T]{delay: delay, apply: apply}
}

// Offer applies v now or parks it for the trailing call.
func (t *Throttle[T]) Offer(now time.Time, v T) {
	if t.last.IsZero() || now.Sub(t.last) >= t.delay {
		t.waiting = false
		t.fire(now, v)
		return
	}
	t.pending = v
	t.waiting = true
}

// Flush applies the parked value once the delay has elapsed.
func (t *Throttle[T]) Flush(now time.Time) {
	if !t.waiting || now.Sub(t.last) < t.delay {
		return
	}
	t.waiting = false
	v := t.pending
	var zero T
	t.pending = zero
	t.fire(now, v)
}

// Pending reports whether a trailing value is waiting.
func (t *Throttle[T]) Pending() bool { return t.waiting }

// Cancel drops any parked value.
func (t *Throttle[T]) Cancel() {
	var zero T
	t.pending = zero
	t.waiting = false
}

func (t *Throttle[T]) fire(now time.Time, v T) {
	t.last = now
	t.apply(v)
}
