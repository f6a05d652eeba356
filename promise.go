// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "code.hybscloud.com/atomix"

// Promise states. Settling and observing race lock-free: whichever side
// arrives second performs the delivery.
const (
	promiseEmpty     uint32 = iota // neither settled nor observed
	promiseArmed                   // callback installed, value pending
	promiseSettled                 // value installed, callback pending
	promiseDelivered               // callback ran
)

// Promise is a single-observer future over a value of type T. A step's
// asynchronous entry point attaches exactly one callback to the previous
// step's promise; the callback runs once the value (or failure) is
// available, without ever blocking the attaching goroutine.
//
// Settling twice, or attaching a second observer, is a logic error and
// panics.
type Promise[T any] struct {
	state atomix.Uint32
	value T
	err   error
	cb    func(T, error)
}

// NewPromise creates an unsettled promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Completed returns a promise already settled with v. The observer
// callback will run inline on the attaching goroutine.
func Completed[T any](v T) *Promise[T] {
	p := &Promise[T]{value: v}
	p.state.Store(promiseSettled)
	return p
}

// OnComplete registers the single observer callback. If the promise is
// already settled the callback runs inline on the calling goroutine;
// otherwise it runs on whichever goroutine settles the promise.
func (p *Promise[T]) OnComplete(cb func(T, error)) {
	if cb == nil {
		panic("coro: nil promise callback")
	}
	p.cb = cb
	if p.state.CompareAndSwap(promiseEmpty, promiseArmed) {
		return
	}
	if p.state.CompareAndSwap(promiseSettled, promiseDelivered) {
		cb(p.value, p.err)
		return
	}
	panic("coro: promise observed twice")
}

// Complete settles the promise with a value.
func (p *Promise[T]) Complete(v T) {
	p.settle(v, nil)
}

// Fail settles the promise with an error.
func (p *Promise[T]) Fail(err error) {
	if err == nil {
		panic("coro: promise failed with nil error")
	}
	var zero T
	p.settle(zero, err)
}

func (p *Promise[T]) settle(v T, err error) {
	p.value = v
	p.err = err
	if p.state.CompareAndSwap(promiseEmpty, promiseSettled) {
		return
	}
	if p.state.CompareAndSwap(promiseArmed, promiseDelivered) {
		p.cb(p.value, p.err)
		return
	}
	panic("coro: promise settled twice")
}
