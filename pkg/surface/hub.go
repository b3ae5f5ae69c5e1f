package surface

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Op is the kind of change a Patch applies to connected surfaces.
type Op string

const (
	OpShow  Op = "show"  // attach a new toast
	OpEnter Op = "enter" // entrance transition started
	OpExit  Op = "exit"  // exit transition started
	OpHide  Op = "hide"  // detach the toast
)

// Patch is a single surface change fanned out to subscribers.
type Patch struct {
	Op    Op
	Toast Toast
}

// Hub tracks attached toasts and fans out every change to connected streams.
// Late subscribers receive a replay of what is currently attached.
type Hub struct {
	mu       sync.Mutex
	b        *broadcast.MemoryBroadcaster[Patch]
	attached map[uuid.UUID]Toast
	order    []uuid.UUID
	timers   map[uuid.UUID]toast.Timer // running transition per toast
	logger   *slog.Logger
}

// NewHub creates a hub whose subscribers buffer up to bufferSize patches.
func NewHub(bufferSize int, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("surface_hub"))
	return &Hub{
		b: broadcast.NewMemoryBroadcaster[Patch](bufferSize, broadcast.WithOnDrop(func() {
			log.Warn("dropped slow surface subscriber")
		})),
		attached: make(map[uuid.UUID]Toast),
		timers:   make(map[uuid.UUID]toast.Timer),
		logger:   log,
	}
}

// Subscribe returns the patches needed to rebuild the current surface and a
// subscription for everything after them.
func (h *Hub) Subscribe(ctx context.Context) ([]Patch, broadcast.Subscriber[Patch]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	replay := make([]Patch, 0, len(h.order))
	for _, id := range h.order {
		replay = append(replay, Patch{Op: OpShow, Toast: h.attached[id]})
	}
	return replay, h.b.Subscribe(ctx)
}

// Attached returns the attached toasts in attach order.
func (h *Hub) Attached() []Toast {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Toast, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.attached[id])
	}
	return out
}

// Subscribers returns the number of connected streams.
func (h *Hub) Subscribers() int {
	return h.b.Len()
}

// Close disconnects every stream.
func (h *Hub) Close() error {
	return h.b.Close()
}

func (h *Hub) show(t Toast) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.attached[t.ID]; ok {
		return false
	}
	h.attached[t.ID] = t
	h.order = append(h.order, t.ID)
	h.b.Broadcast(broadcast.Message[Patch]{Data: Patch{Op: OpShow, Toast: t}})
	return true
}

func (h *Hub) setPhase(id uuid.UUID, p Phase, op Op) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.attached[id]
	if !ok {
		return false
	}
	t.Phase = p
	h.attached[id] = t
	h.b.Broadcast(broadcast.Message[Patch]{Data: Patch{Op: op, Toast: t}})
	return true
}

func (h *Hub) hide(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.attached[id]
	if !ok {
		return false
	}
	delete(h.attached, id)
	if tm, ok := h.timers[id]; ok {
		tm.Stop()
		delete(h.timers, id)
	}
	h.order = slices.DeleteFunc(h.order, func(v uuid.UUID) bool { return v == id })
	h.b.Broadcast(broadcast.Message[Patch]{Data: Patch{Op: OpHide, Toast: t}})
	return true
}

// hold keeps the transition timer of an attached toast so hide can stop it.
// A timer for a toast that is already gone is stopped at once.
func (h *Hub) hold(id uuid.UUID, tm toast.Timer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.attached[id]; !ok {
		tm.Stop()
		return
	}
	if prev, ok := h.timers[id]; ok {
		prev.Stop()
	}
	h.timers[id] = tm
}

func (h *Hub) release(id uuid.UUID) {
	h.mu.Lock()
	delete(h.timers, id)
	h.mu.Unlock()
}

// Transitions returns the number of transition timers still running.
func (h *Hub) Transitions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.timers)
}
