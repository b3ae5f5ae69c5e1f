package surface_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/surface"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/toast/toasttest"
)

var epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func newHub() *surface.Hub {
	return surface.NewHub(16, slog.New(slog.DiscardHandler))
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func ops(t *testing.T, ch <-chan surface.Patch, n int) []surface.Op {
	t.Helper()
	out := make([]surface.Op, 0, n)
	for range n {
		select {
		case p := <-ch:
			out = append(out, p.Op)
		case <-time.After(time.Second):
			t.Fatalf("expected %d patches, got %v", n, out)
		}
	}
	return out
}

func subscribe(t *testing.T, h *surface.Hub) <-chan surface.Patch {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	_, sub := h.Subscribe(ctx)
	out := make(chan surface.Patch, 16)
	go func() {
		for msg := range sub.Receive() {
			out <- msg.Data
		}
	}()
	return out
}

func TestRenderer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("materialize attaches and detach removes once", func(t *testing.T) {
		t.Parallel()
		hub := newHub()
		patches := subscribe(t, hub)
		r := surface.NewRenderer(hub)

		req := toast.Request{ID: uuid.New(), Payload: surface.Content{Title: "Saved"}}
		h, err := r.Materialize(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, req.ID, h)

		attached := hub.Attached()
		require.Len(t, attached, 1)
		assert.Equal(t, "Saved", attached[0].Title)
		assert.Equal(t, surface.PhaseVisible, attached[0].Phase)

		r.Detach(ctx, h)
		r.Detach(ctx, h)
		assert.Empty(t, hub.Attached())
		assert.Equal(t, []surface.Op{surface.OpShow, surface.OpHide}, ops(t, patches, 2))
	})

	t.Run("animated toasts start entering", func(t *testing.T) {
		t.Parallel()
		hub := newHub()
		_, err := surface.NewRenderer(hub).Materialize(ctx, toast.Request{ID: uuid.New(), Animated: true, Payload: "hi"})
		require.NoError(t, err)
		assert.Equal(t, surface.PhaseEntering, hub.Attached()[0].Phase)
	})

	t.Run("rejects payloads it cannot show", func(t *testing.T) {
		t.Parallel()
		r := surface.NewRenderer(newHub())

		_, err := r.Materialize(ctx, toast.Request{ID: uuid.New(), Payload: 42})
		assert.ErrorIs(t, err, surface.ErrUnsupportedPayload)

		_, err = r.Materialize(ctx, toast.Request{ID: uuid.New(), Payload: surface.Content{}})
		assert.ErrorIs(t, err, surface.ErrEmptyContent)

		_, err = r.Materialize(ctx, toast.Request{ID: uuid.New(), Payload: (*surface.Content)(nil)})
		assert.ErrorIs(t, err, surface.ErrEmptyContent)
	})

	t.Run("same id twice", func(t *testing.T) {
		t.Parallel()
		r := surface.NewRenderer(newHub())
		req := toast.Request{ID: uuid.New(), Payload: "x"}

		_, err := r.Materialize(ctx, req)
		require.NoError(t, err)
		_, err = r.Materialize(ctx, req)
		assert.Error(t, err)
	})
}

func TestAnimator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hub := newHub()
	clock := toasttest.NewFakeClock(epoch)
	patches := subscribe(t, hub)
	a := surface.NewAnimator(hub, clock)

	req := toast.Request{ID: uuid.New(), Animated: true, Transition: 300 * time.Millisecond, Payload: "hi"}
	h, err := surface.NewRenderer(hub).Materialize(ctx, req)
	require.NoError(t, err)

	var entered, exited bool
	a.AnimateEntrance(h, req, func() { entered = true })
	assert.Equal(t, surface.PhaseVisible, hub.Attached()[0].Phase)
	assert.False(t, entered)

	clock.Advance(300 * time.Millisecond)
	assert.True(t, entered)

	a.AnimateExit(h, req, func() { exited = true })
	assert.Equal(t, surface.PhaseLeaving, hub.Attached()[0].Phase)
	clock.Advance(300 * time.Millisecond)
	assert.True(t, exited)

	assert.Equal(t, []surface.Op{surface.OpShow, surface.OpEnter, surface.OpExit}, ops(t, patches, 3))

	t.Run("detached toast finishes at once", func(t *testing.T) {
		var done bool
		a.AnimateExit(uuid.New(), req, func() { done = true })
		assert.True(t, done)
	})

	t.Run("clock failure finishes at once", func(t *testing.T) {
		clock.FailNext(assert.AnError)
		var done bool
		a.AnimateEntrance(h, req, func() { done = true })
		assert.True(t, done)
	})

	assert.Equal(t, 0, hub.Transitions())
	assert.Equal(t, 0, clock.Pending())
}

func TestAnimator_DetachStopsTransition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hub := newHub()
	clock := toasttest.NewFakeClock(epoch)
	a := surface.NewAnimator(hub, clock)
	r := surface.NewRenderer(hub)

	req := toast.Request{ID: uuid.New(), Animated: true, Transition: time.Second, Payload: "hi"}
	h, err := r.Materialize(ctx, req)
	require.NoError(t, err)

	var calls int
	a.AnimateEntrance(h, req, func() { calls++ })
	assert.Equal(t, 1, hub.Transitions())
	assert.Equal(t, 1, clock.Pending())

	r.Detach(ctx, h)
	assert.Equal(t, 0, hub.Transitions())
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Minute)
	assert.Zero(t, calls)
}

func TestView(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	html := render(t, surface.View(surface.Toast{
		ID: id,
		Content: surface.Content{
			Title:       "<b>Deploy</b>",
			Description: "Build #42 finished",
			Timeline:    "just now",
			ImageURL:    "javascript:alert(1)",
		},
		Style:      toast.Style{Placement: toast.PlacementBottom, Height: 64},
		Transition: 250 * time.Millisecond,
		Phase:      surface.PhaseEntering,
	}))

	assert.Contains(t, html, `id="`+surface.DOMID(id)+`"`)
	assert.Contains(t, html, "toast toast--bottom toast--entering")
	assert.Contains(t, html, "--toast-transition: 250ms; --toast-height: 64px")
	assert.Contains(t, html, "&lt;b&gt;Deploy&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Deploy")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "just now")
	assert.Contains(t, html, surface.DismissURL(id))

	assert.Equal(t, `<div id="toast-container" class="toast-container" aria-live="polite"></div>`,
		render(t, surface.Container()))
}

// recordingSink captures what a stream would send to the browser.
type recordingSink struct {
	context.Context

	mu      sync.Mutex
	html    []string
	opts    [][]datastar.PatchElementOption
	signals []map[string]any
}

func (s *recordingSink) SendComponent(c templ.Component, opts ...datastar.PatchElementOption) error {
	var buf bytes.Buffer
	if err := c.Render(s, &buf); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html = append(s.html, buf.String())
	s.opts = append(s.opts, opts)
	return nil
}

func (s *recordingSink) SendSignals(signals map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, signals)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.html)
}

func TestStream(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := newHub()
	r := surface.NewRenderer(hub)

	first := toast.Request{ID: uuid.New(), Payload: "already here"}
	_, err := r.Materialize(ctx, first)
	require.NoError(t, err)

	sink := &recordingSink{Context: ctx}
	done := make(chan error, 1)
	go func() { done <- surface.Stream(hub, sink) }()

	require.Eventually(t, func() bool { return sink.count() == 1 && hub.Subscribers() == 1 },
		time.Second, 5*time.Millisecond)

	r.Detach(ctx, first.ID)
	require.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("stream did not stop")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Contains(t, sink.html[0], "already here")
	assert.Len(t, sink.opts[0], 2)
	assert.Empty(t, sink.html[1])
	assert.Len(t, sink.opts[1], 2)
	assert.Equal(t, []map[string]any{
		{surface.ActiveSignal: surface.DOMID(first.ID)},
		{surface.ActiveSignal: ""},
	}, sink.signals)
}

type frameRecorder struct {
	mu     sync.Mutex
	frames []surface.Frame
}

func (w *frameRecorder) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frames = append(w.frames, v.(surface.Frame))
	return nil
}

func (w *frameRecorder) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

func TestFeed(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := newHub()
	r := surface.NewRenderer(hub)

	req := toast.Request{
		ID:      uuid.New(),
		Payload: surface.Content{Title: "Deploy", Description: "v2 is live"},
		Style:   toast.Style{Placement: toast.PlacementBottom},
	}
	_, err := r.Materialize(ctx, req)
	require.NoError(t, err)

	w := &frameRecorder{}
	done := make(chan error, 1)
	go func() { done <- surface.Feed(ctx, hub, w) }()

	require.Eventually(t, func() bool { return w.count() == 1 && hub.Subscribers() == 1 },
		time.Second, 5*time.Millisecond)
	r.Detach(ctx, req.ID)
	require.Eventually(t, func() bool { return w.count() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Equal(t, surface.Frame{
		Op:        surface.OpShow,
		ID:        req.ID,
		Phase:     surface.PhaseVisible,
		Placement: toast.PlacementBottom,
		Content:   surface.Content{Title: "Deploy", Description: "v2 is live"},
	}, w.frames[0])
	assert.Equal(t, surface.OpHide, w.frames[1].Op)
	assert.Empty(t, w.frames[1].Title)
}

func TestScheduler_PresentsThroughSurface(t *testing.T) {
	t.Parallel()

	hub := newHub()
	clock := toasttest.NewFakeClock(epoch)
	patches := subscribe(t, hub)

	s, err := toast.New(surface.NewRenderer(hub),
		toast.WithAnimator(surface.NewAnimator(hub, clock)),
		toast.WithClock(clock),
		toast.WithExecutor(&toast.Inline{}),
	)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	_, err = s.Submit(toast.Request{
		Priority:   toast.PriorityHigh,
		Display:    2 * time.Second,
		Transition: 200 * time.Millisecond,
		Animated:   true,
		Payload:    surface.Content{Title: "Uploaded"},
	})
	require.NoError(t, err)
	require.Len(t, hub.Attached(), 1)

	clock.Advance(200 * time.Millisecond) // entrance done
	clock.Advance(1800 * time.Millisecond) // display elapsed
	assert.Equal(t, surface.PhaseLeaving, hub.Attached()[0].Phase)

	clock.Advance(200 * time.Millisecond) // exit done
	assert.Empty(t, hub.Attached())

	assert.Equal(t,
		[]surface.Op{surface.OpShow, surface.OpEnter, surface.OpExit, surface.OpHide},
		ops(t, patches, 4))
}
