// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// State is the observable lifecycle state of a run.
type State uint32

const (
	Running State = iota
	Done
	Failed
	Cancelled
)

var stateName = [...]string{"running", "done", "failed", "cancelled"}

func (s State) String() string { return stateName[s] }

// Internal run states. stateSealing is a short-lived writer lock between
// winning the terminal CAS and publishing the result or error; observers
// treat it as still running.
const (
	stateRunning uint32 = iota
	stateSealing
	stateDone
	stateFailed
	stateCancelled
)

// Continuation is the per-run execution context shared by every step of
// one coroutine invocation. It carries the run's Scheduler, its serial,
// and the single failure channel all execution modes report into. Steps
// read and update it by reference and never replace it.
//
// A Continuation serves exactly one run and is not reusable.
type Continuation struct {
	sched  Scheduler
	serial Serial
	state  atomix.Uint32
	result any
	err    error
}

// NewContinuation creates the context for one coroutine run.
func NewContinuation(sched Scheduler) *Continuation {
	if sched == nil {
		panic("coro: nil scheduler")
	}
	return &Continuation{sched: sched, serial: nextSerial()}
}

// Scheduler returns the run's deferred-execution facility.
func (c *Continuation) Scheduler() Scheduler { return c.sched }

// Serial returns the run's identifier.
func (c *Continuation) Serial() Serial { return c.serial }

// State returns the run's current lifecycle state.
func (c *Continuation) State() State {
	switch c.state.Load() {
	case stateDone:
		return Done
	case stateFailed:
		return Failed
	case stateCancelled:
		return Cancelled
	}
	return Running
}

// seal transitions the run to a terminal state exactly once.
// The first writer wins; later attempts report false and change nothing.
func (c *Continuation) seal(final uint32, result any, err error) bool {
	if !c.state.CompareAndSwap(stateRunning, stateSealing) {
		return false
	}
	c.result = result
	c.err = err
	c.state.Store(final)
	return true
}

// failure wraps err for attribution to this run. Errors already carrying
// run attribution pass through unchanged.
func (c *Continuation) failure(err error) error {
	var re *RunError
	if errors.As(err, &re) {
		return err
	}
	return &RunError{Serial: c.serial, Err: err}
}

// Fail marks the run as failed with err. The first failure wins; failures
// reported after the run reached a terminal state are dropped. Reports
// whether this call sealed the run.
func (c *Continuation) Fail(err error) bool {
	if err == nil {
		panic("coro: fail with nil error")
	}
	return c.seal(stateFailed, nil, c.failure(err))
}

// Cancel marks the run as cancelled. Pending suspensions of a cancelled
// run resume into nothing: their values are dropped and no further step
// executes. Reports whether this call sealed the run.
func (c *Continuation) Cancel() bool {
	return c.seal(stateCancelled, nil, c.failure(ErrCancelled))
}

// Err returns the run's failure once it is failed or cancelled, nil
// otherwise.
func (c *Continuation) Err() error {
	switch c.state.Load() {
	case stateFailed, stateCancelled:
		return c.err
	}
	return nil
}

// finish completes the run with its final value.
func (c *Continuation) finish(v any) bool {
	return c.seal(stateDone, v, nil)
}

// Await blocks until the run reaches a terminal state, waiting with
// adaptive backoff. Returns the final value on completion, or the run's
// failure. Does not spawn goroutines or create channels.
func Await[O any](c *Continuation) (O, error) {
	var bo iox.Backoff
	for {
		switch c.state.Load() {
		case stateDone:
			return c.result.(O), nil
		case stateFailed, stateCancelled:
			var zero O
			return zero, c.err
		}
		bo.Wait()
	}
}

// AwaitEither blocks like Await and returns the outcome as a
// kont.Either: Right on completion, Left on failure or cancellation.
func AwaitEither[O any](c *Continuation) kont.Either[error, O] {
	v, err := Await[O](c)
	if err != nil {
		return kont.Left[error, O](err)
	}
	return kont.Right[error](v)
}
