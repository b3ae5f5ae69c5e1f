package toast

import (
	"context"
	"time"
)

// Handle is an opaque reference to a materialized toast, owned by the Renderer.
type Handle any

// Renderer attaches toasts to and detaches them from the host surface.
type Renderer interface {
	// Materialize builds the visual element for req and attaches it.
	Materialize(ctx context.Context, req Request) (Handle, error)
	// Detach removes the element. It must tolerate repeated calls.
	Detach(ctx context.Context, h Handle)
}

// Animator runs visual transitions. Each method must call done exactly once.
// It is never used for requests with Animated set to false.
type Animator interface {
	AnimateEntrance(h Handle, req Request, done func())
	AnimateExit(h Handle, req Request, done func())
}

// NopAnimator finishes every transition immediately.
type NopAnimator struct{}

func (NopAnimator) AnimateEntrance(_ Handle, _ Request, done func()) { done() }
func (NopAnimator) AnimateExit(_ Handle, _ Request, done func())     { done() }

// Timer is a cancellation token for a callback registered on a Clock.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock schedules callbacks. Callbacks may run on any goroutine.
type Clock interface {
	Now() time.Time
	After(d time.Duration, fn func()) (Timer, error)
}

// SystemClock is a Clock backed by the time package.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) After(d time.Duration, fn func()) (Timer, error) {
	return time.AfterFunc(d, fn), nil
}
