package toast

import "errors"

var (
	// ErrInvalidRequest is returned by Submit when a request is rejected before queueing.
	ErrInvalidRequest = errors.New("invalid toast request")

	// ErrInvalidPriority is returned when priority is outside the valid range
	ErrInvalidPriority = errors.New("priority must be between 0 and 100")

	// ErrNegativeDuration is returned when display or transition duration is negative
	ErrNegativeDuration = errors.New("durations must not be negative")

	// ErrRenderFailure marks a presentation that the renderer could not materialize
	ErrRenderFailure = errors.New("failed to render toast")

	// ErrTimerFailure marks a presentation whose timer could not be registered
	ErrTimerFailure = errors.New("failed to register toast timer")

	// ErrClosed is returned when the scheduler has been torn down
	ErrClosed = errors.New("scheduler is closed")

	// ErrNilRenderer is returned when a scheduler is created without a renderer
	ErrNilRenderer = errors.New("renderer cannot be nil")
)
