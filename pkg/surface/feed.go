package surface

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Frame is the JSON form of a Patch sent to machine subscribers.
type Frame struct {
	Op        Op              `json:"op"`
	ID        uuid.UUID       `json:"id"`
	Phase     Phase           `json:"phase,omitempty"`
	Placement toast.Placement `json:"placement,omitempty"`
	Content
}

// FrameOf converts a patch into its wire frame.
func FrameOf(p Patch) Frame {
	f := Frame{Op: p.Op, ID: p.Toast.ID, Phase: p.Toast.Phase, Placement: p.Toast.Style.Placement}
	if p.Op != OpHide {
		f.Content = p.Toast.Content
	}
	return f
}

// FrameWriter writes one JSON frame. *websocket.Conn satisfies it.
type FrameWriter interface {
	WriteJSON(v any) error
}

// Feed replays the attached toasts as frames and then forwards every patch
// until ctx is done or the hub drops the subscription.
func Feed(ctx context.Context, h *Hub, w FrameWriter) error {
	return follow(ctx, h, func(p Patch) error { return w.WriteJSON(FrameOf(p)) })
}
