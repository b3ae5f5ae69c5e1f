package toasttest

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// RecordingRenderer records every materialize and detach call.
// Handles are the request IDs.
type RecordingRenderer struct {
	mu       sync.Mutex
	fail     func(toast.Request) error
	rendered []toast.Request
	detached []uuid.UUID
	attached map[uuid.UUID]bool
}

var _ toast.Renderer = (*RecordingRenderer)(nil)

// NewRecordingRenderer creates a renderer. When fail is non-nil and returns
// an error for a request, Materialize fails with that error.
func NewRecordingRenderer(fail func(toast.Request) error) *RecordingRenderer {
	return &RecordingRenderer{fail: fail, attached: make(map[uuid.UUID]bool)}
}

func (r *RecordingRenderer) Materialize(_ context.Context, req toast.Request) (toast.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		if err := r.fail(req); err != nil {
			return nil, err
		}
	}
	r.rendered = append(r.rendered, req)
	r.attached[req.ID] = true
	return req.ID, nil
}

func (r *RecordingRenderer) Detach(_ context.Context, h toast.Handle) {
	id, ok := h.(uuid.UUID)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attached[id] {
		delete(r.attached, id)
		r.detached = append(r.detached, id)
	}
}

// Rendered returns the successfully materialized requests in call order.
func (r *RecordingRenderer) Rendered() []toast.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.rendered)
}

// Detached returns the ids of detached toasts in call order.
func (r *RecordingRenderer) Detached() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.detached)
}

// Attached returns the number of toasts currently attached.
func (r *RecordingRenderer) Attached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attached)
}
