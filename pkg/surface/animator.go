package surface

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Animator switches toast phases on the hub and reports completion after the
// request's transition duration. Browsers run the actual CSS transition.
// Detaching a toast stops its pending transition timer.
type Animator struct {
	hub   *Hub
	clock toast.Clock
}

var _ toast.Animator = (*Animator)(nil)

// NewAnimator creates an animator. A nil clock uses the system clock.
func NewAnimator(hub *Hub, clock toast.Clock) *Animator {
	if clock == nil {
		clock = toast.SystemClock{}
	}
	return &Animator{hub: hub, clock: clock}
}

func (a *Animator) AnimateEntrance(h toast.Handle, req toast.Request, done func()) {
	a.run(h, req, PhaseVisible, OpEnter, done)
}

func (a *Animator) AnimateExit(h toast.Handle, req toast.Request, done func()) {
	a.run(h, req, PhaseLeaving, OpExit, done)
}

func (a *Animator) run(h toast.Handle, req toast.Request, p Phase, op Op, done func()) {
	id, ok := h.(uuid.UUID)
	if !ok || !a.hub.setPhase(id, p, op) || req.Transition <= 0 {
		done()
		return
	}
	// Finish immediately when the clock cannot schedule.
	tm, err := a.clock.After(req.Transition, func() {
		a.hub.release(id)
		done()
	})
	if err != nil {
		done()
		return
	}
	a.hub.hold(id, tm)
}
