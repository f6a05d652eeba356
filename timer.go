// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"time"

	"code.hybscloud.com/iox"
)

// Timer is a suspending step that pauses a run for a fixed duration and
// forwards its input unchanged. The duration is validated at construction;
// execution never revalidates it.
type Timer[T any] struct {
	d Duration
}

// NewTimer creates a timer step. A negative duration or an unknown unit is
// a construction error.
func NewTimer[T any](duration int64, unit Unit) (*Timer[T], error) {
	d, err := NewDuration(duration, unit)
	if err != nil {
		return nil, err
	}
	return &Timer[T]{d: d}, nil
}

// Sleep creates a timer step with a duration in milliseconds.
// Panics on a negative duration.
func Sleep[T any](millis int64) *Timer[T] {
	return SleepIn[T](millis, Milliseconds)
}

// SleepIn creates a timer step with a duration in the given unit.
// Panics on invalid input.
func SleepIn[T any](duration int64, unit Unit) *Timer[T] {
	t, err := NewTimer[T](duration, unit)
	if err != nil {
		panic("coro: " + err.Error())
	}
	return t
}

// Duration returns the configured pause.
func (t *Timer[T]) Duration() Duration { return t.d }

// Execute blocks the calling goroutine for the configured duration and
// returns the input unchanged. The wait watches the run state: when the
// run is failed or cancelled from another goroutine the wait is cut short
// and ErrInterrupted is returned; no value is forwarded.
func (t *Timer[T]) Execute(in T, c *Continuation) (T, error) {
	deadline := time.Now().Add(t.d.Std())
	var bo iox.Backoff
	for time.Now().Before(deadline) {
		if c.state.Load() != stateRunning {
			var zero T
			return zero, ErrInterrupted
		}
		bo.Wait()
	}
	return in, nil
}

// RunAsync never blocks: it suspends the chain remainder and, once the
// previous step's result is available, schedules the resumption with the
// run's Scheduler at the configured delay. The scheduled task resumes the
// suspension with the original value on the scheduler's worker context.
func (t *Timer[T]) RunAsync(prev *Promise[T], next *Chain[T], c *Continuation) {
	susp := Suspend(c, next)
	prev.OnComplete(func(v T, err error) {
		if err != nil {
			c.Fail(err)
			susp.Discard()
			return
		}
		c.Scheduler().Schedule(func() { susp.Resume(v) }, t.d.n, t.d.unit)
	})
}
