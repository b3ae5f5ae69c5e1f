// Package toast schedules transient notifications ("toasts") for a host
// surface. Requests are ordered by priority, at most one toast is visible at
// a time, and each one is retired after its display time before the next is
// admitted.
//
// # Architecture
//
// The package is split into four parts:
//
//   - Compare orders requests by priority alone.
//   - Queue is a stable max-priority queue: equal priorities leave in
//     arrival order.
//   - A per-request lifecycle controller walks a table-driven state machine
//     Pending -> Presenting -> Dismissing -> Completed and talks to the
//     Renderer, Animator and Clock collaborators.
//   - Scheduler owns the queue and the single active controller and exposes
//     Submit, CancelActive, Dismiss, Drain, Stats and Close.
//
// Admission is non-preemptive: a high-priority request that arrives while a
// toast is visible waits for it to complete.
//
// # Usage
//
//	s, err := toast.New(renderer,
//	    toast.WithAnimator(animator),
//	    toast.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	id, err := s.Submit(toast.Request{
//	    Priority:   toast.PriorityHigh,
//	    Display:    3 * time.Second,
//	    Transition: 300 * time.Millisecond,
//	    Payload:    content,
//	    OnComplete: func(o toast.Outcome) { ... },
//	})
//
// # Concurrency
//
// Every state change runs on an Executor. The default Loop executes work on
// its own goroutine; Inline runs work on the caller's goroutine and is meant
// for deterministic tests together with toasttest.FakeClock. Clock and
// Animator callbacks are re-posted onto the executor and ignored once the
// controller has left the state they were registered for, so a cancelled
// timer can never move a completed toast.
//
// Observers, renderers and OnComplete callbacks run on the executor and must
// not block. They may call Submit or Dismiss; such calls are queued behind
// the current work.
//
// # Errors
//
// Submit returns ErrInvalidRequest (joined with ErrInvalidPriority or
// ErrNegativeDuration) and ErrClosed. Render and timer failures never reach
// the caller: the toast completes with ReasonRenderFailed or
// ReasonTimerFailed, Outcome.Err wraps ErrRenderFailure or ErrTimerFailure,
// and the next queued request is admitted.
package toast
