// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Step is the unit of work in a coroutine: a transformer from I to O with
// two entry points of equal observable effect on the value.
//
// Execute runs the step to completion on the calling goroutine and may
// block. RunAsync must never block: it creates a Suspension over next,
// attaches a callback to prev that performs the step's work once the
// previous value is available and then resumes the suspension, and
// returns before any of that fires. Exactly one of a synchronous return
// or a suspension-plus-resume happens per invocation.
//
// Steps hold no per-run mutable state — per-run state belongs to the
// Continuation — so one step value may serve concurrent runs.
type Step[I, O any] interface {
	Execute(in I, c *Continuation) (O, error)
	RunAsync(prev *Promise[I], next *Chain[O], c *Continuation)
}

// anyStep is the type-erased view of a step used by chain plumbing.
type anyStep interface {
	executeAny(in any, c *Continuation) (any, error)
	runAsyncAny(prev *Promise[any], rest *node, c *Continuation)
}

// node is one link of an erased step chain. Nodes are immutable and
// shared across runs of the same coroutine definition.
type node struct {
	step anyStep
	next *node
}

// lifted adapts a typed Step into the erased chain world.
type lifted[I, O any] struct {
	step Step[I, O]
}

func liftStep[I, O any](s Step[I, O]) anyStep {
	if s == nil {
		panic("coro: nil step")
	}
	return lifted[I, O]{step: s}
}

func (l lifted[I, O]) executeAny(in any, c *Continuation) (any, error) {
	out, err := l.step.Execute(in.(I), c)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l lifted[I, O]) runAsyncAny(prev *Promise[any], rest *node, c *Continuation) {
	typed := NewPromise[I]()
	prev.OnComplete(func(v any, err error) {
		if err != nil {
			typed.Fail(err)
			return
		}
		typed.Complete(v.(I))
	})
	l.step.RunAsync(typed, &Chain[O]{c: c, rest: rest}, c)
}

// Chain is the remainder of a step chain, accepting a value of type T.
// A step's RunAsync wraps it in a Suspension; resuming feeds the value to
// the next step through the same advancement mechanism the runner uses,
// or completes the run when no steps remain.
type Chain[T any] struct {
	c    *Continuation
	rest *node
}

// accept advances the chain with v on the calling goroutine: the next
// step's RunAsync is attached to a fresh promise, which is then completed
// with v (attach-then-complete).
func (ch *Chain[T]) accept(v T) {
	if ch.rest == nil {
		ch.c.finish(v)
		return
	}
	p := NewPromise[any]()
	ch.rest.step.runAsyncAny(p, ch.rest.next, ch.c)
	p.Complete(v)
}
