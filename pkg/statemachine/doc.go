// Package statemachine provides a small, type-safe, table-driven finite state
// machine for Go applications.
//
// States and events are plain comparable values (typically string-based
// named types), so a machine is declared once as a transition table and then
// driven by firing events:
//
//	type phase string
//	type trigger string
//
//	m := statemachine.MustNew[phase, trigger]("pending",
//	    statemachine.WithTransition[phase, trigger]("pending", "running", "start"),
//	    statemachine.WithTransition[phase, trigger]("running", "done", "finish"),
//	)
//
//	_ = m.Fire(ctx, "start")
//
// # Guards and Hooks
//
// Several transitions may share a source state and event. The first one whose
// guards all pass wins, which allows guard-based branching. When every
// candidate is vetoed Fire returns ErrRejected and the state is unchanged.
// Hooks run after each successful transition.
//
// # Error Handling
//
// Fire returns rich error types that can be inspected with helper predicates:
//
//	if statemachine.IsNoTransition(err) { /* event not valid here */ }
//	if statemachine.IsRejected(err)     { /* guards said no */ }
//
// # Concurrency
//
// A Machine is not safe for concurrent use. It is meant to be owned by a
// single goroutine or a serial executor, which is how the toast lifecycle
// controller uses it.
package statemachine
