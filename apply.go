// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Apply wraps a plain function as a non-suspending step. The function runs
// on the calling goroutine in synchronous mode, and on the previous
// promise's completion context in asynchronous mode.
type Apply[I, O any] struct {
	fn func(I) (O, error)
}

// NewApply creates a function step.
func NewApply[I, O any](fn func(I) (O, error)) *Apply[I, O] {
	if fn == nil {
		panic("coro: nil step function")
	}
	return &Apply[I, O]{fn: fn}
}

// Execute implements Step.
func (a *Apply[I, O]) Execute(in I, c *Continuation) (O, error) {
	return a.fn(in)
}

// RunAsync implements Step. The function's failure is routed to the run's
// failure channel and the suspension discarded; no value is forwarded.
func (a *Apply[I, O]) RunAsync(prev *Promise[I], next *Chain[O], c *Continuation) {
	susp := Suspend(c, next)
	prev.OnComplete(func(v I, err error) {
		if err != nil {
			c.Fail(err)
			susp.Discard()
			return
		}
		out, err := a.fn(v)
		if err != nil {
			c.Fail(err)
			susp.Discard()
			return
		}
		susp.Resume(out)
	})
}
