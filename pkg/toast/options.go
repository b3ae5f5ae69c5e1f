package toast

import "log/slog"

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAnimator sets the animator used for requests with Animated set.
// Defaults to NopAnimator.
func WithAnimator(a Animator) Option {
	return func(s *Scheduler) {
		if a != nil {
			s.animator = a
		}
	}
}

// WithClock sets the clock used for display and transition timers.
// Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithExecutor sets the timeline the scheduler runs on. By default the
// scheduler owns a Loop and closes it in Close.
func WithExecutor(e Executor) Option {
	return func(s *Scheduler) {
		if e != nil {
			s.exec = e
		}
	}
}

// WithLogger sets a custom logger for the scheduler.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers a lifecycle observer. It can be used several times.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

