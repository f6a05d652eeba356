// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"fmt"

	"code.hybscloud.com/atomix"
)

// Suspension is an affine handle to a paused position in a step chain.
// A step's asynchronous entry point creates one around the chain
// remainder before yielding control; whoever holds it — typically a
// scheduler worker — consumes it exactly once with Resume or Discard.
// Consuming a suspension twice is a logic error and panics.
type Suspension[T any] struct {
	c        *Continuation
	next     *Chain[T]
	consumed atomix.Uint32
}

// Suspend creates a Suspension over next within run c.
func Suspend[T any](c *Continuation, next *Chain[T]) *Suspension[T] {
	if next == nil {
		panic("coro: suspend on nil chain")
	}
	return &Suspension[T]{c: c, next: next}
}

// Resume feeds v to the suspended chain remainder and advances the run on
// the calling goroutine, which may differ from the one that suspended.
// If the run already reached a terminal state the suspension is consumed
// but v is dropped and nothing executes. A panic while advancing is routed
// to the run's failure channel, not up the caller's stack.
func (s *Suspension[T]) Resume(v T) {
	s.consume()
	if s.c.state.Load() != stateRunning {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.c.Fail(fmt.Errorf("resumption panic: %v", r))
		}
	}()
	s.next.accept(v)
}

// Discard consumes the suspension without running the chain remainder.
// Used when the upstream result failed and the run is being torn down.
func (s *Suspension[T]) Discard() {
	s.consume()
}

func (s *Suspension[T]) consume() {
	if !s.consumed.CompareAndSwap(0, 1) {
		panic("coro: suspension resumed twice")
	}
}
