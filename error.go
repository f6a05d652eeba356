// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeDuration reports a Duration constructed with a negative
	// magnitude.
	ErrNegativeDuration = errors.New("duration must be >= 0")

	// ErrInvalidUnit reports a Duration constructed with a unit outside
	// the enumerated set.
	ErrInvalidUnit = errors.New("invalid time unit")

	// ErrInterrupted reports a blocking step wait cut short because the
	// run was failed or cancelled from another goroutine. No value is
	// forwarded past an interrupted step.
	ErrInterrupted = errors.New("blocking wait interrupted")

	// ErrCancelled is the failure a cancelled run settles with.
	ErrCancelled = errors.New("run cancelled")
)

// RunError attributes a failure to a single coroutine run. Every error
// surfaced through a Continuation's failure channel is a *RunError; the
// wrapped cause is reachable via errors.Is and errors.As.
type RunError struct {
	Serial Serial
	Err    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("coro: run %d: %v", e.Serial, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
