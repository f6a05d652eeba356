// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"fmt"
	"time"
)

// Unit is an enumerated time unit for durations and scheduler delays.
type Unit int

const (
	Nanoseconds Unit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
)

// unitScale maps each unit to its runtime duration.
var unitScale = [...]time.Duration{
	Nanoseconds:  time.Nanosecond,
	Microseconds: time.Microsecond,
	Milliseconds: time.Millisecond,
	Seconds:      time.Second,
	Minutes:      time.Minute,
	Hours:        time.Hour,
	Days:         24 * time.Hour,
}

var unitName = [...]string{"ns", "µs", "ms", "s", "m", "h", "d"}

// Valid reports whether u is one of the enumerated units.
func (u Unit) Valid() bool {
	return u >= Nanoseconds && u <= Days
}

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitName[u]
}

// Duration is a non-negative magnitude in an enumerated unit.
// The zero value is zero nanoseconds.
type Duration struct {
	n    int64
	unit Unit
}

// NewDuration validates and constructs a Duration. A negative magnitude or
// an unknown unit is a construction error, reported here and never at
// execution time.
func NewDuration(n int64, unit Unit) (Duration, error) {
	if n < 0 {
		return Duration{}, ErrNegativeDuration
	}
	if !unit.Valid() {
		return Duration{}, ErrInvalidUnit
	}
	return Duration{n: n, unit: unit}, nil
}

// MustDuration is NewDuration for statically known arguments.
// Panics on invalid input.
func MustDuration(n int64, unit Unit) Duration {
	d, err := NewDuration(n, unit)
	if err != nil {
		panic("coro: " + err.Error())
	}
	return d
}

// Magnitude returns the magnitude in the duration's own unit.
func (d Duration) Magnitude() int64 { return d.n }

// Unit returns the duration's unit.
func (d Duration) Unit() Unit { return d.unit }

// Std converts to the runtime representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d.n) * unitScale[d.unit]
}

func (d Duration) String() string {
	return fmt.Sprintf("%d%s", d.n, d.unit)
}
