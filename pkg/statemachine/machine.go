package statemachine

import (
	"context"
	"fmt"
)

// Guard vetoes a transition when it returns false.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) bool

// Transition is a single row of the transition table.
type Transition[S, E comparable] struct {
	From   S
	To     S
	Event  E
	Guards []Guard[S, E] // All must pass for the transition to proceed
}

// Machine is a table-driven finite state machine.
// Lookups are O(1) on the nested map [from][event][]Transition.
type Machine[S, E comparable] struct {
	current     S
	transitions map[S]map[E][]Transition[S, E]
	hooks       []func(from, to S, event E)
}

func newMachine[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
}

// Current returns the state the machine is in.
func (m *Machine[S, E]) Current() S {
	return m.current
}

// Is reports whether the machine is currently in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.current == s
}

// Add declares a transition. Two unguarded transitions for the same state and
// event are ambiguous and rejected with ErrDuplicateTransition.
func (m *Machine[S, E]) Add(t Transition[S, E]) error {
	byEvent, ok := m.transitions[t.From]
	if !ok {
		byEvent = make(map[E][]Transition[S, E])
		m.transitions[t.From] = byEvent
	}

	if len(t.Guards) == 0 {
		for _, existing := range byEvent[t.Event] {
			if len(existing.Guards) == 0 {
				return fmt.Errorf("%w: %v on %v", ErrDuplicateTransition, t.From, t.Event)
			}
		}
	}

	byEvent[t.Event] = append(byEvent[t.Event], t)
	return nil
}

// Fire moves the machine along the first transition for event whose guards pass.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return &ErrNoTransition{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}

	chosen := m.pick(ctx, candidates, event)
	if chosen == nil {
		return &ErrRejected{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}

	from := m.current
	m.current = chosen.To
	for _, hook := range m.hooks {
		hook(from, chosen.To, event)
	}
	return nil
}

func (m *Machine[S, E]) pick(ctx context.Context, candidates []Transition[S, E], event E) *Transition[S, E] {
	for i := range candidates {
		passed := true
		for _, guard := range candidates[i].Guards {
			if !guard(ctx, m.current, event) {
				passed = false
				break
			}
		}
		if passed {
			return &candidates[i]
		}
	}
	return nil
}
