package statemachine

import (
	"errors"
	"fmt"
)

// ErrDuplicateTransition is returned when two unguarded transitions share a state and event.
var ErrDuplicateTransition = errors.New("duplicate unguarded transition for the same state and event")

// ErrNoTransition indicates no transition is declared for the current state and event.
type ErrNoTransition struct {
	State string
	Event string
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("no transition from state '%s' for event '%s'", e.State, e.Event)
}

// ErrRejected indicates every candidate transition was vetoed by its guards.
type ErrRejected struct {
	State string
	Event string
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
}

func IsNoTransition(err error) bool {
	var e *ErrNoTransition
	return errors.As(err, &e)
}

func IsRejected(err error) bool {
	var e *ErrRejected
	return errors.As(err, &e)
}
