// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Scheduler defers task execution. Implementations run each task exactly
// once, after at least the given delay has elapsed, on a worker context of
// their choosing — not necessarily the submitting goroutine. The minimum
// delay is best-effort from above: a task may run later under load, never
// earlier.
//
// Schedulers know nothing about runs. A resumption task carries its own
// failure routing: panics inside it land on the owning Continuation, not
// on the scheduler's worker.
type Scheduler interface {
	Schedule(task func(), delay int64, unit Unit)
}

// TimerScheduler defers tasks on the runtime timer heap. Each task runs on
// its own timer goroutine once the delay elapses. The zero value is ready
// to use and safe for concurrent submission.
type TimerScheduler struct{}

// Schedule implements Scheduler. Panics on a negative delay or an unknown
// unit; validated delays come from Duration construction.
func (TimerScheduler) Schedule(task func(), delay int64, unit Unit) {
	d := MustDuration(delay, unit)
	time.AfterFunc(d.Std(), task)
}

// timedTask pairs a submitted task with its due time.
type timedTask struct {
	at   time.Time
	task func()
}

// LoopScheduler is a deterministic scheduler for proactor-style loops.
// Submissions land on a bounded lock-free SPSC queue; the loop releases
// due tasks by calling Tick, or waits them all out with Drain. Tasks run
// on the ticking goroutine, in submission order among those due.
//
// SPSC discipline: at most one goroutine submits at a time and one drains
// at a time. Within a single coroutine run this holds by construction,
// since only one step is logically active at any moment. Tasks may submit
// follow-up work but must not call Tick or Drain themselves.
type LoopScheduler struct {
	q       lfq.SPSC[timedTask]
	pending []timedTask
}

// NewLoopScheduler creates a LoopScheduler with a bounded submission
// queue of the given capacity.
func NewLoopScheduler(capacity int) *LoopScheduler {
	s := &LoopScheduler{}
	s.q.Init(capacity)
	return s
}

// Schedule implements Scheduler. Blocks with adaptive backoff while the
// submission queue is full, waiting for the draining side to make room.
func (s *LoopScheduler) Schedule(task func(), delay int64, unit Unit) {
	var bo iox.Backoff
	for s.Submit(task, delay, unit) != nil {
		bo.Wait()
	}
}

// Submit is the non-blocking variant of Schedule. Returns
// iox.ErrWouldBlock when the submission queue is full; the task was not
// accepted and may be resubmitted.
func (s *LoopScheduler) Submit(task func(), delay int64, unit Unit) error {
	d := MustDuration(delay, unit)
	tt := timedTask{at: time.Now().Add(d.Std()), task: task}
	return s.q.Enqueue(&tt)
}

// collect moves all submitted tasks onto the consumer-side pending list.
func (s *LoopScheduler) collect() {
	for {
		tt, err := s.q.Dequeue()
		if err != nil {
			return
		}
		s.pending = append(s.pending, tt)
	}
}

// Tick runs every submitted task due at or before now, on the calling
// goroutine, in submission order. Tasks not yet due are retained. Returns
// the number of tasks run.
func (s *LoopScheduler) Tick(now time.Time) int {
	s.collect()
	ran := 0
	rest := s.pending[:0]
	for _, tt := range s.pending {
		if tt.at.After(now) {
			rest = append(rest, tt)
			continue
		}
		tt.task()
		ran++
	}
	s.pending = rest
	return ran
}

// Pending reports how many submitted tasks have not yet run.
func (s *LoopScheduler) Pending() int {
	s.collect()
	return len(s.pending)
}

// Drain ticks until no submitted task remains, backing off adaptively
// while waiting for due times. Returns the total number of tasks run.
func (s *LoopScheduler) Drain() int {
	var bo iox.Backoff
	total := 0
	for {
		n := s.Tick(time.Now())
		total += n
		if n > 0 {
			bo.Reset()
			continue
		}
		if len(s.pending) == 0 {
			return total
		}
		bo.Wait()
	}
}
