package toast

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/statemachine"
)

// State is the lifecycle state of a presentation.
type State string

const (
	StatePending    State = "pending"
	StatePresenting State = "presenting"
	StateDismissing State = "dismissing"
	StateCompleted  State = "completed"
)

type trigger string

const (
	triggerPromote trigger = "promote"
	triggerExpire  trigger = "expire"
	triggerFinish  trigger = "finish"
	triggerCancel  trigger = "cancel"
	triggerFail    trigger = "fail"
)

// newLifecycle builds the transition table for c. Dismissing is guarded until
// the display time has elapsed and the entrance has finished.
func newLifecycle(c *controller) *statemachine.Machine[State, trigger] {
	ready := func(context.Context, State, trigger) bool { return c.shown && c.entered }
	return statemachine.MustNew(StatePending,
		statemachine.WithTransition(StatePending, StatePresenting, triggerPromote),
		statemachine.WithTransition(StatePresenting, StateDismissing, triggerExpire, statemachine.WithGuard(ready)),
		statemachine.WithTransition(StateDismissing, StateCompleted, triggerFinish),
		statemachine.WithTransitionFrom(StateCompleted, triggerCancel, StatePending, StatePresenting, StateDismissing),
		statemachine.WithTransitionFrom(StateCompleted, triggerFail, StatePending, StatePresenting, StateDismissing),
		statemachine.WithHook(func(from, to State, t trigger) {
			attrs := []any{
				logger.ToastID(c.req.ID),
				slog.String("from", string(from)),
				logger.State(string(to)),
				slog.String("trigger", string(t)),
			}
			if to == StateCompleted && !c.startedAt.IsZero() {
				attrs = append(attrs, logger.Duration(c.s.clock.Now().Sub(c.startedAt)))
			}
			c.s.logger.Debug("toast state changed", attrs...)
		}),
	)
}

// controller drives one request from Pending to Completed.
// All methods run on the scheduler timeline.
type controller struct {
	s         *Scheduler
	req       Request
	fsm       *statemachine.Machine[State, trigger]
	handle    Handle
	rendered  bool
	startedAt time.Time
	timer     Timer

	// Guard for Presenting -> Dismissing.
	shown   bool
	entered bool
}

func newController(s *Scheduler, req Request) *controller {
	c := &controller{s: s, req: req}
	c.fsm = newLifecycle(c)
	return c
}

func (c *controller) state() State { return c.fsm.Current() }

func (c *controller) start() {
	h, err := c.s.renderer.Materialize(c.s.ctx, c.req)
	if err != nil {
		c.complete(triggerFail, ReasonRenderFailed, errors.Join(ErrRenderFailure, err))
		return
	}
	c.handle, c.rendered = h, true

	if err := c.fsm.Fire(c.s.ctx, triggerPromote); err != nil {
		c.complete(triggerFail, ReasonRenderFailed, errors.Join(ErrRenderFailure, err))
		return
	}
	c.startedAt = c.s.clock.Now()
	c.s.emit(Event{Kind: EventPresented, ID: c.req.ID, Priority: c.req.Priority, State: StatePresenting})

	// The display time counts from render start, in parallel with the entrance.
	if !c.arm(c.req.Display, StatePresenting, c.onDisplayElapsed) {
		return
	}
	if c.req.Animated {
		c.s.animator.AnimateEntrance(c.handle, c.req, c.callback(StatePresenting, c.onEntered))
	} else {
		c.entered = true
	}
}

func (c *controller) onDisplayElapsed() {
	c.timer = nil
	c.shown = true
	c.dismiss()
}

func (c *controller) onEntered() {
	c.entered = true
	c.dismiss()
}

func (c *controller) dismiss() {
	if err := c.fsm.Fire(c.s.ctx, triggerExpire); err != nil {
		return
	}
	c.s.emit(Event{Kind: EventDismissing, ID: c.req.ID, Priority: c.req.Priority, State: StateDismissing})

	switch {
	case c.req.Animated:
		c.s.animator.AnimateExit(c.handle, c.req, c.callback(StateDismissing, c.onExited))
	case c.req.Transition == 0:
		c.onExited()
	default:
		c.arm(c.req.Transition, StateDismissing, c.onExited)
	}
}

func (c *controller) onExited() {
	c.timer = nil
	c.complete(triggerFinish, ReasonExpired, nil)
}

// cancel force-completes the presentation. It is a no-op once Completed.
func (c *controller) cancel(reason Reason) {
	c.complete(triggerCancel, reason, nil)
}

// arm registers a timer whose callback only runs while the controller is
// still in state want. A registration failure completes the presentation.
func (c *controller) arm(d time.Duration, want State, fn func()) bool {
	t, err := c.s.clock.After(d, c.callback(want, fn))
	if err != nil {
		c.complete(triggerFail, ReasonTimerFailed, errors.Join(ErrTimerFailure, err))
		return false
	}
	c.timer = t
	return true
}

// callback adapts fn for collaborators: it fires at most once, hops back onto
// the scheduler timeline and is dropped if the controller has moved on.
func (c *controller) callback(want State, fn func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			c.s.exec.Execute(func() {
				if c.fsm.Is(want) {
					fn()
				}
			})
		})
	}
}

func (c *controller) complete(t trigger, reason Reason, cause error) {
	from := c.fsm.Current()
	if err := c.fsm.Fire(c.s.ctx, t); err != nil {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.rendered {
		c.s.renderer.Detach(c.s.ctx, c.handle)
	}

	var elapsed time.Duration
	if !c.startedAt.IsZero() {
		elapsed = c.s.clock.Now().Sub(c.startedAt)
	}

	if cause != nil {
		c.s.logger.Warn("toast presentation failed",
			logger.ToastID(c.req.ID),
			logger.Reason(string(reason)),
			logger.State(string(from)),
			logger.Error(cause))
	}

	if c.req.OnComplete != nil {
		c.req.OnComplete(Outcome{ID: c.req.ID, Reason: reason, Err: cause})
	}
	c.s.emit(Event{
		Kind:     EventCompleted,
		ID:       c.req.ID,
		Priority: c.req.Priority,
		State:    StateCompleted,
		Reason:   reason,
		Err:      cause,
		Elapsed:  elapsed,
	})
	c.s.onActiveCompleted(c)
}
