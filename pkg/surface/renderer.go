package surface

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Renderer attaches toasts to the hub. Handles are request IDs.
type Renderer struct {
	hub *Hub
}

var _ toast.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer publishing to hub.
func NewRenderer(hub *Hub) *Renderer {
	return &Renderer{hub: hub}
}

// Materialize validates the payload, renders it once to surface template
// errors and attaches the toast.
func (r *Renderer) Materialize(ctx context.Context, req toast.Request) (toast.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := contentOf(req.Payload)
	if err != nil {
		return nil, err
	}

	t := Toast{
		ID:         req.ID,
		Content:    content,
		Style:      req.Style,
		Transition: req.Transition,
		Phase:      PhaseVisible,
	}
	if req.Animated {
		t.Phase = PhaseEntering
	}

	if err := View(t).Render(ctx, io.Discard); err != nil {
		return nil, fmt.Errorf("render toast view: %w", err)
	}
	if !r.hub.show(t) {
		return nil, fmt.Errorf("toast %s is already attached", req.ID)
	}
	return req.ID, nil
}

// Detach removes the toast. Unknown or repeated handles are ignored.
func (r *Renderer) Detach(_ context.Context, h toast.Handle) {
	if id, ok := h.(uuid.UUID); ok {
		r.hub.hide(id)
	}
}
