// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Coroutine is a composed chain of steps from I to O. Definitions are
// immutable and hold no per-run state: one definition may back any number
// of concurrent runs, each under its own Continuation.
type Coroutine[I, O any] struct {
	steps []anyStep
	head  *node
}

// NewCoroutine starts a coroutine definition with its first step.
func NewCoroutine[I, O any](s Step[I, O]) *Coroutine[I, O] {
	return newCoroutine[I, O]([]anyStep{liftStep(s)})
}

// Then appends a step to a coroutine definition, producing a new
// definition. The original is unchanged and remains runnable.
func Then[I, M, O any](co *Coroutine[I, M], s Step[M, O]) *Coroutine[I, O] {
	steps := make([]anyStep, len(co.steps)+1)
	copy(steps, co.steps)
	steps[len(co.steps)] = liftStep(s)
	return newCoroutine[I, O](steps)
}

func newCoroutine[I, O any](steps []anyStep) *Coroutine[I, O] {
	var head *node
	for i := len(steps) - 1; i >= 0; i-- {
		head = &node{step: steps[i], next: head}
	}
	return &Coroutine[I, O]{steps: steps, head: head}
}

// RunBlocking executes the chain synchronously on the calling goroutine:
// each step's Execute runs to completion before the next begins. Returns
// the final value, or the run's failure wrapped for attribution.
func (co *Coroutine[I, O]) RunBlocking(sched Scheduler, in I) (O, error) {
	return co.Execute(NewContinuation(sched), in)
}

// Execute is RunBlocking under an existing continuation. Used when the
// caller needs the run handle before execution starts, e.g. to cancel a
// blocking run from another goroutine.
func (co *Coroutine[I, O]) Execute(c *Continuation, in I) (O, error) {
	var zero O
	v := any(in)
	for n := co.head; n != nil; n = n.next {
		out, err := n.step.executeAny(v, c)
		if err != nil {
			c.Fail(err)
			return zero, c.Err()
		}
		v = out
	}
	if !c.finish(v) {
		// Failed or cancelled concurrently with the last step.
		return zero, c.Err()
	}
	return v.(O), nil
}

// RunAsync starts the chain without blocking: the input is handed to the
// first step's asynchronous entry point and the call returns as soon as
// the chain has registered its first suspension. The outcome is observed
// via Await or AwaitEither on the returned Continuation.
func (co *Coroutine[I, O]) RunAsync(sched Scheduler, in I) *Continuation {
	c := NewContinuation(sched)
	head := &Chain[I]{c: c, rest: co.head}
	head.accept(in)
	return c
}
