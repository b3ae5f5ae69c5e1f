package toast

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Priority is the ordering key of a toast (0-100, higher is shown first)
type Priority int8

// Priority constants
const (
	PriorityMin     Priority = 0
	PriorityLow     Priority = 25
	PriorityNormal  Priority = 50
	PriorityHigh    Priority = 75
	PriorityMax     Priority = 100
	PriorityDefault Priority = PriorityNormal
)

// Valid checks if the priority is within the valid range
func (p Priority) Valid() bool {
	return p >= PriorityMin && p <= PriorityMax
}

// Placement is the edge of the host surface a toast is attached to.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
	PlacementCenter Placement = "center"
)

// Style is handed to the renderer and animator untouched.
type Style struct {
	Placement Placement
	Height    int // pixels, 0 lets the renderer decide
}

// Request describes a single toast. It is treated as immutable once submitted.
type Request struct {
	ID         uuid.UUID     // assigned by Submit when zero
	Priority   Priority      // higher is greater
	Display    time.Duration // how long the toast stays fully visible
	Transition time.Duration // length of the exit transition
	Animated   bool          // use the Animator instead of plain timers
	Style      Style
	Payload    any // read only by the Renderer

	// OnComplete is invoked exactly once when the presentation completes.
	// Requests discarded from the queue never reach it.
	OnComplete func(Outcome)
}

// Validate reports whether the request can be admitted.
// Returned errors wrap ErrInvalidRequest.
func (r Request) Validate() error {
	var errs []error
	if !r.Priority.Valid() {
		errs = append(errs, ErrInvalidPriority)
	}
	if r.Display < 0 || r.Transition < 0 {
		errs = append(errs, ErrNegativeDuration)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidRequest}, errs...)...)
}

// Reason tells why a presentation completed.
type Reason string

const (
	ReasonExpired      Reason = "expired"
	ReasonCancelled    Reason = "cancelled"
	ReasonDrained      Reason = "drained"
	ReasonRenderFailed Reason = "render_failed"
	ReasonTimerFailed  Reason = "timer_failed"
)

// Outcome is passed to Request.OnComplete.
type Outcome struct {
	ID     uuid.UUID
	Reason Reason
	Err    error // set for ReasonRenderFailed and ReasonTimerFailed
}
