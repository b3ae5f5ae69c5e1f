package toast

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Scheduler presents toasts one at a time in priority order.
//
// Public methods are safe for concurrent use and never block on the
// presentation itself. All state changes happen on the Executor.
type Scheduler struct {
	renderer  Renderer
	animator  Animator
	clock     Clock
	exec      Executor
	loop      *Loop // set when the scheduler owns its executor
	logger    *slog.Logger
	observers []Observer

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	// Owned by the executor.
	queue     *Queue
	active    *controller
	admitting bool
	torndown  bool
}

// Stats is a snapshot of the scheduler.
type Stats struct {
	Active  *Request // nil when idle
	State   State    // state of the active presentation
	Pending int
}

// New creates a scheduler for one host surface.
func New(r Renderer, opts ...Option) (*Scheduler, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}

	s := &Scheduler{
		renderer: r,
		animator: NopAnimator{},
		clock:    SystemClock{},
		logger:   slog.New(slog.DiscardHandler),
		queue:    NewQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exec == nil {
		s.loop = NewLoop()
		s.exec = s.loop
	}
	s.logger = s.logger.With(logger.Component("toast_scheduler"))
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Submit validates req and hands it to the scheduler. When nothing is being
// presented the request is promoted right away, otherwise it is queued.
// Only validation errors and ErrClosed are returned.
func (s *Scheduler) Submit(req Request) (uuid.UUID, error) {
	if s.closed.Load() {
		return uuid.Nil, ErrClosed
	}
	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if !s.exec.Execute(func() { s.admit(req) }) {
		return uuid.Nil, ErrClosed
	}
	return req.ID, nil
}

// CancelActive force-completes the active presentation, if any.
func (s *Scheduler) CancelActive() {
	s.exec.Execute(func() {
		if s.active != nil {
			s.active.cancel(ReasonCancelled)
		}
	})
}

// Dismiss cancels the toast with the given id if it is active, or withdraws
// it from the queue.
func (s *Scheduler) Dismiss(id uuid.UUID) {
	s.exec.Execute(func() {
		if s.active != nil && s.active.req.ID == id {
			s.active.cancel(ReasonCancelled)
			return
		}
		if req, ok := s.queue.Remove(id); ok {
			s.discard(req, "dismissed")
		}
	})
}

// Drain discards queued requests without presenting them and force-completes
// the active presentation.
func (s *Scheduler) Drain() {
	s.exec.Execute(s.drain)
}

// Stats returns a snapshot taken on the scheduler timeline.
func (s *Scheduler) Stats(ctx context.Context) (Stats, error) {
	if s.closed.Load() {
		return Stats{}, ErrClosed
	}
	ch := make(chan Stats, 1)
	if !s.exec.Execute(func() { ch <- s.snapshot() }) {
		return Stats{}, ErrClosed
	}
	select {
	case st := <-ch:
		return st, nil
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

// Close tears the scheduler down: the queue is drained, the active
// presentation is force-completed and further submits fail with ErrClosed.
// An owned executor is stopped after the teardown has run.
//
// When the scheduler owns its Loop, Close waits for that loop to stop and
// therefore deadlocks if called from an OnComplete hook or an Observer. Call
// it from outside the scheduler timeline, or hop to another goroutine first.
func (s *Scheduler) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.exec.Execute(func() {
		s.torndown = true
		s.drain()
		s.logger.Info("toast scheduler closed")
	})
	if s.loop != nil {
		s.loop.Close()
	}
	s.cancel()
}

func (s *Scheduler) admit(req Request) {
	s.emit(Event{Kind: EventSubmitted, ID: req.ID, Priority: req.Priority, State: StatePending})
	if s.torndown {
		s.discard(req, "closed")
		return
	}
	if s.active == nil {
		s.present(req)
		return
	}
	s.queue.Push(req)
	s.logger.Debug("toast queued", logger.ToastID(req.ID), logger.QueueDepth(s.queue.Len()))
	s.emit(Event{Kind: EventQueued, ID: req.ID, Priority: req.Priority, State: StatePending})
}

// present makes req the active presentation. Presentations that complete
// while starting (render or timer failures) are replaced by the next queued
// request in the same loop.
func (s *Scheduler) present(req Request) {
	for {
		c := newController(s, req)
		s.active = c
		s.logger.Debug("presenting toast",
			logger.ToastID(req.ID),
			logger.Priority(int(req.Priority)),
			logger.QueueDepth(s.queue.Len()))

		s.admitting = true
		c.start()
		s.admitting = false

		if s.active != nil || s.torndown {
			return
		}
		next, ok := s.queue.Pop()
		if !ok {
			return
		}
		req = next
	}
}

// onActiveCompleted frees the active slot and admits the next request.
// It is the only admission point besides an idle Submit.
func (s *Scheduler) onActiveCompleted(c *controller) {
	if s.active != c {
		return
	}
	s.active = nil
	if s.admitting || s.torndown {
		return
	}
	if next, ok := s.queue.Pop(); ok {
		s.present(next)
	}
}

func (s *Scheduler) drain() {
	for _, req := range s.queue.Clear() {
		s.discard(req, "drained")
	}
	if s.active != nil {
		s.active.cancel(ReasonDrained)
	}
}

func (s *Scheduler) discard(req Request, why string) {
	s.logger.Debug("toast discarded", logger.ToastID(req.ID), slog.String("cause", why))
	s.emit(Event{Kind: EventDiscarded, ID: req.ID, Priority: req.Priority, State: StatePending})
}

func (s *Scheduler) snapshot() Stats {
	st := Stats{Pending: s.queue.Len()}
	if s.active != nil {
		req := s.active.req
		st.Active = &req
		st.State = s.active.state()
	}
	return st
}

func (s *Scheduler) emit(ev Event) {
	if len(s.observers) == 0 {
		return
	}
	ev.Pending = s.queue.Len()
	ev.At = s.clock.Now()
	for _, o := range s.observers {
		o(ev)
	}
}
