// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides the step suspension/resumption protocol for
// coroutine execution: chains of typed steps that run either to completion
// synchronously or asynchronously with steps suspending mid-chain and
// resuming later without blocking a worker goroutine.
//
// # Architecture
//
//   - Steps: [Step] is the unit of work with dual entry points — blocking
//     Execute and non-blocking RunAsync. [Timer] pauses a run for a fixed
//     [Duration]; [Apply] lifts a plain function.
//   - Suspension: [Suspension] is the affine handle a step registers before
//     yielding; [Suspension.Resume] feeds the in-flight value to the chain
//     remainder exactly once, from any goroutine. Double resume panics.
//   - Context: [Continuation] is the per-run shared state — scheduler
//     handle, run [Serial], and the single failure channel both execution
//     modes report into. Failures surface as [RunError] values.
//   - Scheduling: [Scheduler] guarantees delayed eventual execution.
//     [TimerScheduler] defers on the runtime timer heap; [LoopScheduler]
//     is a deterministic single-consumer scheduler over a bounded
//     lock-free SPSC queue via [code.hybscloud.com/lfq].
//   - Waiting: [Await] and the timer's blocking wait poll with adaptive
//     backoff via [code.hybscloud.com/iox], without goroutines or channels.
//     [AwaitEither] reports the outcome as [code.hybscloud.com/kont.Either].
//
// # Execution modes
//
// One definition, two worlds: [Coroutine.RunBlocking] drives every step's
// Execute on the calling goroutine; [Coroutine.RunAsync] returns
// immediately and advances through suspensions as scheduled resumptions
// fire. Steps execute in chain order in both modes; a timer only postpones
// when the next step begins, never reorders it.
//
// # Example
//
//	co := coro.Then(
//		coro.NewCoroutine[string, string](coro.Sleep[string](50)),
//		coro.NewApply(func(s string) (string, error) { return s + "!", nil }),
//	)
//	c := co.RunAsync(coro.TimerScheduler{}, "hi")
//	v, err := coro.Await[string](c) // "hi!" after ≥50ms
package coro
