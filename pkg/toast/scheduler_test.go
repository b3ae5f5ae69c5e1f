package toast_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/toasttest"
)

var epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// fixture runs a scheduler on an Inline executor with a fake clock and
// tracks how many toasts are visible at once.
type fixture struct {
	s        *toast.Scheduler
	clock    *toasttest.FakeClock
	renderer *toasttest.RecordingRenderer
	animator *toasttest.ManualAnimator

	mu         sync.Mutex
	events     []toast.Event
	visible    map[uuid.UUID]bool
	maxVisible int
	outcomes   map[string][]toast.Outcome
}

func newFixture(t *testing.T, fail func(toast.Request) error, opts ...toast.Option) *fixture {
	t.Helper()

	f := &fixture{
		clock:    toasttest.NewFakeClock(epoch),
		renderer: toasttest.NewRecordingRenderer(fail),
		animator: toasttest.NewManualAnimator(),
		visible:  make(map[uuid.UUID]bool),
		outcomes: make(map[string][]toast.Outcome),
	}

	base := []toast.Option{
		toast.WithClock(f.clock),
		toast.WithAnimator(f.animator),
		toast.WithExecutor(&toast.Inline{}),
		toast.WithObserver(f.observe),
	}
	s, err := toast.New(f.renderer, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	f.s = s
	return f
}

func (f *fixture) observe(ev toast.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, ev)
	switch ev.Kind {
	case toast.EventPresented:
		f.visible[ev.ID] = true
		f.maxVisible = max(f.maxVisible, len(f.visible))
	case toast.EventCompleted:
		delete(f.visible, ev.ID)
	}
}

func (f *fixture) submit(t *testing.T, name string, p toast.Priority, display time.Duration) uuid.UUID {
	t.Helper()
	return f.submitRequest(t, toast.Request{Priority: p, Display: display, Payload: name})
}

func (f *fixture) submitRequest(t *testing.T, r toast.Request) uuid.UUID {
	t.Helper()

	name, _ := r.Payload.(string)
	r.OnComplete = func(o toast.Outcome) {
		f.mu.Lock()
		f.outcomes[name] = append(f.outcomes[name], o)
		f.mu.Unlock()
	}
	id, err := f.s.Submit(r)
	require.NoError(t, err)
	return id
}

func (f *fixture) outcome(name string) []toast.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]toast.Outcome(nil), f.outcomes[name]...)
}

func (f *fixture) count(kind toast.EventKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (f *fixture) rendered() []string {
	return names(f.renderer.Rendered())
}

func (f *fixture) stats(t *testing.T) toast.Stats {
	t.Helper()
	st, err := f.s.Stats(context.Background())
	require.NoError(t, err)
	return st
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := toast.New(nil)
	require.ErrorIs(t, err, toast.ErrNilRenderer)
}

func TestScheduler_Submit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     toast.Request
		wantErr error
	}{
		{"priority above range", toast.Request{Priority: 101}, toast.ErrInvalidPriority},
		{"priority below range", toast.Request{Priority: -1}, toast.ErrInvalidPriority},
		{"negative display", toast.Request{Display: -time.Second}, toast.ErrNegativeDuration},
		{"negative transition", toast.Request{Transition: -time.Millisecond}, toast.ErrNegativeDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)

			id, err := f.s.Submit(tt.req)
			require.ErrorIs(t, err, toast.ErrInvalidRequest)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, uuid.Nil, id)

			assert.Empty(t, f.rendered())
			assert.Equal(t, 0, f.stats(t).Pending)
		})
	}
}

func TestScheduler_Submit_AssignsID(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	id := f.submit(t, "a", toast.PriorityNormal, time.Second)
	assert.NotEqual(t, uuid.Nil, id)

	own := uuid.New()
	got, err := f.s.Submit(toast.Request{ID: own, Payload: "b"})
	require.NoError(t, err)
	assert.Equal(t, own, got)
}

func TestScheduler_AdmissionOrder(t *testing.T) {
	t.Parallel()

	t.Run("first request is promoted without contention", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.submit(t, "p1", 1, time.Second)
		f.submit(t, "p5", 5, time.Second)
		f.submit(t, "p3", 3, time.Second)

		assert.Equal(t, []string{"p1"}, f.rendered())
		assert.Equal(t, 2, f.stats(t).Pending)

		f.clock.Advance(time.Second)
		assert.Equal(t, []string{"p1", "p5"}, f.rendered())

		f.clock.Advance(time.Second)
		assert.Equal(t, []string{"p1", "p5", "p3"}, f.rendered())

		f.clock.Advance(time.Second)
		st := f.stats(t)
		assert.Nil(t, st.Active)
		assert.Equal(t, 0, st.Pending)
		assert.Equal(t, 1, f.maxVisible)
	})

	t.Run("equal priorities keep arrival order", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.submit(t, "active", 2, time.Second)
		f.submit(t, "x", 2, time.Second)
		f.submit(t, "y", 2, time.Second)
		f.submit(t, "z", 2, time.Second)

		for range 4 {
			f.clock.Advance(time.Second)
		}
		assert.Equal(t, []string{"active", "x", "y", "z"}, f.rendered())
	})

	t.Run("strictly highest priority is admitted next", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.submit(t, "active", toast.PriorityMin, 10*time.Second)
		f.submit(t, "p10", 10, time.Second)
		f.submit(t, "p90", 90, time.Second)
		f.submit(t, "p50", 50, time.Second)
		f.submit(t, "p70", 70, time.Second)

		f.clock.Advance(10 * time.Second)
		for range 4 {
			f.clock.Advance(time.Second)
		}
		assert.Equal(t, []string{"active", "p90", "p70", "p50", "p10"}, f.rendered())
		assert.Equal(t, 1, f.maxVisible)
	})

	t.Run("higher priority does not preempt the active toast", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		low := f.submit(t, "low", toast.PriorityMin, 5*time.Second)
		f.submit(t, "urgent", toast.PriorityMax, time.Second)

		f.clock.Advance(4 * time.Second)
		st := f.stats(t)
		require.NotNil(t, st.Active)
		assert.Equal(t, low, st.Active.ID)
		assert.Equal(t, 1, st.Pending)

		f.clock.Advance(time.Second)
		assert.Equal(t, []string{"low", "urgent"}, f.rendered())
	})
}

func TestScheduler_NaturalExpiry(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	id := f.submit(t, "a", toast.PriorityNormal, 3*time.Second)
	st := f.stats(t)
	require.NotNil(t, st.Active)
	assert.Equal(t, toast.StatePresenting, st.State)

	f.clock.Advance(3 * time.Second)

	out := f.outcome("a")
	require.Len(t, out, 1)
	assert.Equal(t, id, out[0].ID)
	assert.Equal(t, toast.ReasonExpired, out[0].Reason)
	require.NoError(t, out[0].Err)

	assert.Nil(t, f.stats(t).Active)
	assert.Equal(t, []uuid.UUID{id}, f.renderer.Detached())
	assert.Equal(t, 0, f.clock.Pending())

	f.mu.Lock()
	last := f.events[len(f.events)-1]
	f.mu.Unlock()
	assert.Equal(t, toast.EventCompleted, last.Kind)
	assert.Equal(t, 3*time.Second, last.Elapsed)
}

func TestScheduler_ZeroDurations(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	f.submitRequest(t, toast.Request{Payload: "flash"})

	// Promotion happened, completion waits for the next tick.
	assert.Equal(t, []string{"flash"}, f.rendered())
	assert.Empty(t, f.outcome("flash"))
	assert.Equal(t, toast.StatePresenting, f.stats(t).State)

	f.clock.Tick()

	out := f.outcome("flash")
	require.Len(t, out, 1)
	assert.Equal(t, toast.ReasonExpired, out[0].Reason)
	assert.Nil(t, f.stats(t).Active)
	assert.Equal(t, 1, f.count(toast.EventDismissing))
}

func TestScheduler_TransitionTimer(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	f.submitRequest(t, toast.Request{Display: time.Second, Transition: 500 * time.Millisecond, Payload: "a"})

	f.clock.Advance(time.Second)
	assert.Equal(t, toast.StateDismissing, f.stats(t).State)
	assert.Equal(t, 1, f.renderer.Attached())

	f.clock.Advance(499 * time.Millisecond)
	assert.Empty(t, f.outcome("a"))

	f.clock.Advance(time.Millisecond)
	require.Len(t, f.outcome("a"), 1)
	assert.Equal(t, 0, f.renderer.Attached())
}

func TestScheduler_Animated(t *testing.T) {
	t.Parallel()

	t.Run("display elapses before entrance finishes", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		id := f.submitRequest(t, toast.Request{Display: time.Second, Transition: time.Second, Animated: true, Payload: "a"})

		f.clock.Advance(time.Second)
		assert.Equal(t, toast.StatePresenting, f.stats(t).State)

		require.True(t, f.animator.FinishEntrance(id))
		assert.Equal(t, toast.StateDismissing, f.stats(t).State)

		// The exit is driven by the animator, not by a transition timer.
		f.clock.Advance(time.Minute)
		assert.Empty(t, f.outcome("a"))

		require.True(t, f.animator.FinishExit(id))
		out := f.outcome("a")
		require.Len(t, out, 1)
		assert.Equal(t, toast.ReasonExpired, out[0].Reason)
	})

	t.Run("entrance finishes before display elapses", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		id := f.submitRequest(t, toast.Request{Display: time.Second, Animated: true, Payload: "a"})

		require.True(t, f.animator.FinishEntrance(id))
		assert.Equal(t, toast.StatePresenting, f.stats(t).State)

		f.clock.Advance(time.Second)
		assert.Equal(t, toast.StateDismissing, f.stats(t).State)
		require.True(t, f.animator.FinishExit(id))
		require.Len(t, f.outcome("a"), 1)
	})

	t.Run("stale animator callback is ignored", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		a := f.submitRequest(t, toast.Request{Display: time.Second, Animated: true, Payload: "a"})
		f.submit(t, "b", toast.PriorityNormal, time.Second)

		f.s.CancelActive()
		assert.Equal(t, []string{"a", "b"}, f.rendered())

		require.True(t, f.animator.FinishEntrance(a))
		assert.Len(t, f.outcome("a"), 1)
		assert.Equal(t, toast.StatePresenting, f.stats(t).State)
		assert.Empty(t, f.outcome("b"))

		f.clock.Advance(time.Second)
		require.Len(t, f.outcome("b"), 1)
		assert.Equal(t, toast.ReasonExpired, f.outcome("b")[0].Reason)
	})
}

func TestScheduler_Cancel(t *testing.T) {
	t.Parallel()

	t.Run("cancel is idempotent", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		id := f.submit(t, "a", toast.PriorityNormal, time.Minute)
		f.s.CancelActive()
		f.s.CancelActive()
		f.s.Dismiss(id)
		f.clock.Advance(time.Hour)

		out := f.outcome("a")
		require.Len(t, out, 1)
		assert.Equal(t, toast.ReasonCancelled, out[0].Reason)
		assert.Equal(t, []uuid.UUID{id}, f.renderer.Detached())
		assert.Equal(t, 0, f.clock.Pending())
	})

	t.Run("cancel while idle is a no-op", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.s.CancelActive()
		assert.Nil(t, f.stats(t).Active)
	})

	t.Run("cancel admits the next request", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.submit(t, "a", toast.PriorityNormal, time.Minute)
		f.submit(t, "b", toast.PriorityNormal, time.Minute)
		f.s.CancelActive()

		assert.Equal(t, []string{"a", "b"}, f.rendered())
		assert.Equal(t, toast.StatePresenting, f.stats(t).State)
	})

	t.Run("cancel during dismissal", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.submitRequest(t, toast.Request{Display: time.Second, Transition: time.Second, Payload: "a"})
		f.clock.Advance(time.Second)
		require.Equal(t, toast.StateDismissing, f.stats(t).State)

		f.s.CancelActive()
		f.clock.Advance(time.Second)

		out := f.outcome("a")
		require.Len(t, out, 1)
		assert.Equal(t, toast.ReasonCancelled, out[0].Reason)
	})

	t.Run("dismiss withdraws a queued request", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.submit(t, "a", toast.PriorityNormal, time.Second)
		b := f.submit(t, "b", toast.PriorityNormal, time.Second)
		f.s.Dismiss(b)
		f.s.Dismiss(uuid.New())

		f.clock.Advance(time.Minute)
		assert.Equal(t, []string{"a"}, f.rendered())
		assert.Empty(t, f.outcome("b"))
		assert.Equal(t, 1, f.count(toast.EventDiscarded))
	})
}

func TestScheduler_RenderFailure(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("surface detached")
	fail := func(r toast.Request) error {
		if r.Payload == "bad" {
			return errBroken
		}
		return nil
	}

	t.Run("failed request does not stall the queue", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, fail)

		first := f.submit(t, "first", toast.PriorityNormal, time.Second)
		f.submit(t, "bad", toast.PriorityNormal, time.Second)
		f.submit(t, "next", toast.PriorityNormal, time.Second)

		f.clock.Advance(time.Second)

		out := f.outcome("bad")
		require.Len(t, out, 1)
		assert.Equal(t, toast.ReasonRenderFailed, out[0].Reason)
		require.ErrorIs(t, out[0].Err, toast.ErrRenderFailure)
		require.ErrorIs(t, out[0].Err, errBroken)

		assert.Equal(t, []string{"first", "next"}, f.rendered())
		assert.Equal(t, []uuid.UUID{first}, f.renderer.Detached())
		assert.Equal(t, toast.StatePresenting, f.stats(t).State)
		assert.Equal(t, 1, f.maxVisible)
	})

	t.Run("failure while idle", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, fail)

		f.submit(t, "bad", toast.PriorityNormal, time.Second)
		require.Len(t, f.outcome("bad"), 1)
		assert.Nil(t, f.stats(t).Active)

		f.submit(t, "next", toast.PriorityNormal, time.Second)
		assert.Equal(t, []string{"next"}, f.rendered())
	})

	t.Run("consecutive failures", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, fail)

		f.submit(t, "first", toast.PriorityNormal, time.Second)
		for range 5 {
			f.submit(t, "bad", toast.PriorityNormal, time.Second)
		}
		f.submit(t, "last", toast.PriorityMin, time.Second)

		f.clock.Advance(time.Second)
		assert.Len(t, f.outcome("bad"), 5)
		assert.Equal(t, []string{"first", "last"}, f.rendered())
	})
}

func TestScheduler_TimerFailure(t *testing.T) {
	t.Parallel()

	t.Run("display timer", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		f.clock.FailNext(errors.New("no timers left"))
		id := f.submit(t, "a", toast.PriorityNormal, time.Second)

		out := f.outcome("a")
		require.Len(t, out, 1)
		assert.Equal(t, toast.ReasonTimerFailed, out[0].Reason)
		require.ErrorIs(t, out[0].Err, toast.ErrTimerFailure)
		assert.Equal(t, []uuid.UUID{id}, f.renderer.Detached())

		f.submit(t, "b", toast.PriorityNormal, time.Second)
		f.clock.Advance(time.Second)
		require.Len(t, f.outcome("b"), 1)
		assert.Equal(t, toast.ReasonExpired, f.outcome("b")[0].Reason)
	})

	t.Run("transition timer", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		id := f.submitRequest(t, toast.Request{Display: time.Second, Transition: 500 * time.Millisecond, Payload: "a"})
		f.submit(t, "b", toast.PriorityNormal, time.Second)

		// The display timer is armed; the next registration is the exit transition.
		f.clock.FailNext(errors.New("no timers left"))
		f.clock.Advance(time.Second)

		out := f.outcome("a")
		require.Len(t, out, 1)
		assert.Equal(t, toast.ReasonTimerFailed, out[0].Reason)
		require.ErrorIs(t, out[0].Err, toast.ErrTimerFailure)
		assert.Equal(t, []uuid.UUID{id}, f.renderer.Detached())
		assert.Equal(t, 1, f.count(toast.EventDismissing))

		st := f.stats(t)
		require.NotNil(t, st.Active)
		assert.Equal(t, "b", st.Active.Payload)
		assert.Equal(t, []string{"a", "b"}, f.rendered())

		f.clock.Advance(time.Second)
		require.Len(t, f.outcome("b"), 1)
		assert.Equal(t, toast.ReasonExpired, f.outcome("b")[0].Reason)
		assert.Len(t, f.outcome("a"), 1)
	})
}

// lateClock registers every callback a second time, late, and never stops
// the copy. It stands in for a platform timer that fires after Stop.
type lateClock struct {
	*toasttest.FakeClock
	late time.Duration
}

func (c lateClock) After(d time.Duration, fn func()) (toast.Timer, error) {
	t, err := c.FakeClock.After(d, fn)
	if err != nil {
		return nil, err
	}
	if _, err := c.FakeClock.After(d+c.late, fn); err != nil {
		return nil, err
	}
	return t, nil
}

func TestScheduler_StaleTimers(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.s.Close()
	clock := lateClock{FakeClock: f.clock, late: time.Minute}
	s, err := toast.New(f.renderer,
		toast.WithClock(clock),
		toast.WithExecutor(&toast.Inline{}),
		toast.WithObserver(f.observe),
	)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	f.s = s

	a := f.submitRequest(t, toast.Request{Display: time.Second, Transition: 500 * time.Millisecond, Payload: "a"})
	f.clock.Advance(1500 * time.Millisecond)

	out := f.outcome("a")
	require.Len(t, out, 1)
	assert.Equal(t, toast.ReasonExpired, out[0].Reason)
	assert.Equal(t, 2, f.clock.Pending())

	// Cancelling a finished toast changes nothing.
	f.s.CancelActive()
	f.s.Dismiss(a)
	assert.Len(t, f.outcome("a"), 1)

	f.submit(t, "b", toast.PriorityNormal, 10*time.Minute)
	f.clock.Advance(2 * time.Minute)

	assert.Len(t, f.outcome("a"), 1)
	assert.Empty(t, f.outcome("b"))
	assert.Equal(t, 1, f.count(toast.EventDismissing))
	st := f.stats(t)
	require.NotNil(t, st.Active)
	assert.Equal(t, toast.StatePresenting, st.State)

	f.s.CancelActive()
	require.Len(t, f.outcome("b"), 1)
	assert.Equal(t, toast.ReasonCancelled, f.outcome("b")[0].Reason)
	assert.Len(t, f.outcome("a"), 1)
}

func TestScheduler_Drain(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	active := f.submit(t, "active", toast.PriorityNormal, 10*time.Second)
	f.submit(t, "q1", toast.PriorityHigh, time.Second)
	f.submit(t, "q2", toast.PriorityLow, time.Second)

	f.s.Drain()

	out := f.outcome("active")
	require.Len(t, out, 1)
	assert.Equal(t, toast.ReasonDrained, out[0].Reason)
	assert.Equal(t, []uuid.UUID{active}, f.renderer.Detached())

	st := f.stats(t)
	assert.Nil(t, st.Active)
	assert.Equal(t, 0, st.Pending)

	f.clock.Advance(time.Minute)
	assert.Equal(t, []string{"active"}, f.rendered())
	assert.Empty(t, f.outcome("q1"))
	assert.Empty(t, f.outcome("q2"))
	assert.Equal(t, 2, f.count(toast.EventDiscarded))

	// The scheduler keeps working after a drain.
	f.submit(t, "after", toast.PriorityNormal, time.Second)
	assert.Equal(t, []string{"active", "after"}, f.rendered())
}

func TestScheduler_Close(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	f.submit(t, "a", toast.PriorityNormal, time.Second)
	f.submit(t, "b", toast.PriorityNormal, time.Second)

	f.s.Close()
	f.s.Close()

	out := f.outcome("a")
	require.Len(t, out, 1)
	assert.Equal(t, toast.ReasonDrained, out[0].Reason)
	assert.Empty(t, f.outcome("b"))

	_, err := f.s.Submit(toast.Request{})
	require.ErrorIs(t, err, toast.ErrClosed)
	_, err = f.s.Stats(context.Background())
	require.ErrorIs(t, err, toast.ErrClosed)

	f.clock.Advance(time.Minute)
	assert.Equal(t, []string{"a"}, f.rendered())
}

func TestScheduler_StoppedExecutor(t *testing.T) {
	t.Parallel()

	l := toast.NewLoop()
	s, err := toast.New(toasttest.NewRecordingRenderer(nil), toast.WithExecutor(l))
	require.NoError(t, err)
	l.Close()

	_, err = s.Submit(toast.Request{Display: time.Second})
	require.ErrorIs(t, err, toast.ErrClosed)
	_, err = s.Stats(context.Background())
	require.ErrorIs(t, err, toast.ErrClosed)

	assert.NotPanics(t, s.Close)
}

func TestScheduler_LogsTransitions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := newFixture(t, nil, toast.WithLogger(log))

	id := f.submitRequest(t, toast.Request{Display: time.Second, Transition: 200 * time.Millisecond, Payload: "a"})
	f.clock.Advance(1200 * time.Millisecond)

	type line struct {
		Msg      string        `json:"msg"`
		ToastID  string        `json:"toast_id"`
		From     string        `json:"from"`
		State    string        `json:"state"`
		Trigger  string        `json:"trigger"`
		Duration time.Duration `json:"duration"`
	}
	var got []line
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var l line
		require.NoError(t, dec.Decode(&l))
		if l.Msg == "toast state changed" {
			got = append(got, l)
		}
	}

	require.Len(t, got, 3)
	for _, l := range got {
		assert.Equal(t, id.String(), l.ToastID)
	}
	assert.Equal(t, []string{"presenting", "dismissing", "completed"}, []string{got[0].State, got[1].State, got[2].State})
	assert.Equal(t, "pending", got[0].From)
	assert.Equal(t, "finish", got[2].Trigger)
	assert.Equal(t, 1200*time.Millisecond, got[2].Duration)
}

func TestScheduler_Events(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	a := f.submit(t, "a", toast.PriorityNormal, time.Second)
	b := f.submit(t, "b", toast.PriorityHigh, time.Second)
	f.clock.Advance(2 * time.Second)

	f.mu.Lock()
	defer f.mu.Unlock()

	type step struct {
		kind    toast.EventKind
		id      uuid.UUID
		pending int
	}
	var got []step
	for _, ev := range f.events {
		got = append(got, step{ev.Kind, ev.ID, ev.Pending})
	}

	assert.Equal(t, []step{
		{toast.EventSubmitted, a, 0},
		{toast.EventPresented, a, 0},
		{toast.EventSubmitted, b, 0},
		{toast.EventQueued, b, 1},
		{toast.EventDismissing, a, 1},
		{toast.EventCompleted, a, 1},
		{toast.EventPresented, b, 0},
		{toast.EventDismissing, b, 0},
		{toast.EventCompleted, b, 0},
	}, got)
}

func TestScheduler_Loop(t *testing.T) {
	t.Parallel()

	t.Run("system clock", func(t *testing.T) {
		t.Parallel()
		r := toasttest.NewRecordingRenderer(nil)
		s, err := toast.New(r)
		require.NoError(t, err)
		defer s.Close()

		done := make(chan toast.Outcome, 1)
		_, err = s.Submit(toast.Request{
			Display:    10 * time.Millisecond,
			Transition: 5 * time.Millisecond,
			OnComplete: func(o toast.Outcome) { done <- o },
		})
		require.NoError(t, err)

		select {
		case o := <-done:
			assert.Equal(t, toast.ReasonExpired, o.Reason)
		case <-time.After(2 * time.Second):
			t.Fatal("toast did not complete")
		}
		assert.Equal(t, 0, r.Attached())
	})

	t.Run("concurrent submitters", func(t *testing.T) {
		t.Parallel()
		clock := toasttest.NewFakeClock(epoch)
		r := toasttest.NewRecordingRenderer(nil)

		var mu sync.Mutex
		visible, maxVisible := 0, 0
		observe := func(ev toast.Event) {
			mu.Lock()
			defer mu.Unlock()
			switch ev.Kind {
			case toast.EventPresented:
				visible++
				maxVisible = max(maxVisible, visible)
			case toast.EventCompleted:
				visible--
			}
		}

		s, err := toast.New(r, toast.WithClock(clock), toast.WithObserver(observe))
		require.NoError(t, err)
		defer s.Close()

		const total = 50
		var wg sync.WaitGroup
		for i := range total {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Submit(toast.Request{Priority: toast.Priority(i * 2), Display: time.Second})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		require.Eventually(t, func() bool {
			st, err := s.Stats(context.Background())
			return err == nil && st.Active != nil && st.Pending == total-1 && clock.Pending() == 1
		}, 2*time.Second, time.Millisecond)

		for i := 1; i < total; i++ {
			clock.Advance(time.Second)
			require.Eventually(t, func() bool {
				return len(r.Rendered()) == i+1 && clock.Pending() == 1
			}, 2*time.Second, time.Millisecond)
		}

		rendered := r.Rendered()
		for i := 2; i < len(rendered); i++ {
			assert.GreaterOrEqual(t, rendered[i-1].Priority, rendered[i].Priority)
		}

		mu.Lock()
		assert.Equal(t, 1, maxVisible)
		mu.Unlock()
	})
}
