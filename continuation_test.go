// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/coro"
)

func TestContinuationNilSchedulerPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil scheduler")
		}
		msg, ok := r.(string)
		if !ok || msg != "coro: nil scheduler" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	coro.NewContinuation(nil)
}

func TestContinuationFirstFailureWins(t *testing.T) {
	c := coro.NewContinuation(coro.TimerScheduler{})
	first := errors.New("first")
	second := errors.New("second")

	if !c.Fail(first) {
		t.Fatal("first Fail should seal the run")
	}
	if c.Fail(second) {
		t.Fatal("second Fail should be dropped")
	}
	if c.State() != coro.Failed {
		t.Fatalf("state got %v, want failed", c.State())
	}
	if !errors.Is(c.Err(), first) {
		t.Fatalf("Err got %v, want first", c.Err())
	}
	if errors.Is(c.Err(), second) {
		t.Fatal("second failure must not overwrite the first")
	}
}

func TestContinuationFailureAttribution(t *testing.T) {
	c := coro.NewContinuation(coro.TimerScheduler{})
	boom := errors.New("boom")
	c.Fail(boom)

	var re *coro.RunError
	if !errors.As(c.Err(), &re) {
		t.Fatalf("expected *RunError, got %T", c.Err())
	}
	if re.Serial != c.Serial() {
		t.Fatalf("serial got %d, want %d", re.Serial, c.Serial())
	}
	if !errors.Is(re, boom) {
		t.Fatalf("cause not reachable: %v", re)
	}
}

func TestContinuationCancel(t *testing.T) {
	c := coro.NewContinuation(coro.TimerScheduler{})
	if !c.Cancel() {
		t.Fatal("Cancel should seal the run")
	}
	if c.State() != coro.Cancelled {
		t.Fatalf("state got %v, want cancelled", c.State())
	}
	if !errors.Is(c.Err(), coro.ErrCancelled) {
		t.Fatalf("Err got %v, want ErrCancelled", c.Err())
	}
	// Cancelling or failing a terminal run changes nothing.
	if c.Cancel() || c.Fail(errors.New("late")) {
		t.Fatal("terminal run must not be resealed")
	}
}

func TestContinuationErrNilWhileRunning(t *testing.T) {
	c := coro.NewContinuation(coro.TimerScheduler{})
	if c.Err() != nil {
		t.Fatalf("Err got %v, want nil while running", c.Err())
	}
	if c.State() != coro.Running {
		t.Fatalf("state got %v, want running", c.State())
	}
}

func TestAwaitFailedRun(t *testing.T) {
	c := coro.NewContinuation(coro.TimerScheduler{})
	c.Fail(errors.New("boom"))
	v, err := coro.Await[string](c)
	if err == nil {
		t.Fatal("expected error from failed run")
	}
	if v != "" {
		t.Fatalf("no value must be forwarded, got %q", v)
	}
}

func TestAwaitEitherRight(t *testing.T) {
	co := coro.NewCoroutine[int, int](coro.NewApply(func(n int) (int, error) {
		return n * 2, nil
	}))
	c := co.RunAsync(coro.TimerScheduler{}, 21)
	e := coro.AwaitEither[int](c)
	if e.IsLeft() {
		l, _ := e.GetLeft()
		t.Fatalf("expected Right, got Left(%v)", l)
	}
	v, _ := e.GetRight()
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestAwaitEitherLeft(t *testing.T) {
	boom := errors.New("boom")
	co := coro.NewCoroutine[int, int](coro.NewApply(func(n int) (int, error) {
		return 0, boom
	}))
	c := co.RunAsync(coro.TimerScheduler{}, 1)
	e := coro.AwaitEither[int](c)
	if !e.IsLeft() {
		t.Fatal("expected Left for a failed run")
	}
	err, _ := e.GetLeft()
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestSerialsMonotonic(t *testing.T) {
	a := coro.NewContinuation(coro.TimerScheduler{})
	b := coro.NewContinuation(coro.TimerScheduler{})
	if b.Serial() <= a.Serial() {
		t.Fatalf("serials not increasing: %d then %d", a.Serial(), b.Serial())
	}
}

func TestAwaitBackoffCoverage(t *testing.T) {
	// A run that never terminates: Await must park in bo.Wait without
	// spinning the test down. Mirrors the scheduler-pending case.
	step := newCaptureStep[int]()
	co := coro.NewCoroutine[int, int](step)
	c := co.RunAsync(coro.TimerScheduler{}, 1)

	go coro.Await[int](c)
	time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()

	// Unpark the run so the goroutine can finish.
	p := <-step.out
	p.susp.Resume(p.value)
}
