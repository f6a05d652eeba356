// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"code.hybscloud.com/coro"
)

// parked is a suspension captured mid-run together with its in-flight value.
type parked[T any] struct {
	susp  *coro.Suspension[T]
	value T
}

// captureStep suspends and parks the suspension for the test to resume.
// Used to exercise the suspension contract without a scheduler in the way.
type captureStep[T any] struct {
	out chan parked[T]
}

func newCaptureStep[T any]() *captureStep[T] {
	return &captureStep[T]{out: make(chan parked[T], 1)}
}

func (s *captureStep[T]) Execute(in T, c *coro.Continuation) (T, error) {
	return in, nil
}

func (s *captureStep[T]) RunAsync(prev *coro.Promise[T], next *coro.Chain[T], c *coro.Continuation) {
	susp := coro.Suspend(c, next)
	prev.OnComplete(func(v T, err error) {
		if err != nil {
			c.Fail(err)
			susp.Discard()
			return
		}
		s.out <- parked[T]{susp: susp, value: v}
	})
}
