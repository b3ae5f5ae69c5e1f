package surface

import (
	"context"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// ActiveSignal is the frontend signal holding the DOM id of the newest
// attached toast, or an empty string.
const ActiveSignal = "activeToast"

// Sink is an open DataStar stream. handler.StreamContext satisfies it.
type Sink interface {
	context.Context
	SendComponent(component templ.Component, opts ...datastar.PatchElementOption) error
	SendSignals(signals map[string]any) error
}

// Stream replays the attached toasts into sink and then forwards every patch
// until the client leaves or the hub drops the stream.
func Stream(h *Hub, sink Sink) error {
	return follow(sink, h, func(p Patch) error { return send(sink, p) })
}

// follow hands the replay and then every live patch to fn. It returns nil
// when ctx is done or the subscription is closed.
func follow(ctx context.Context, h *Hub, fn func(Patch) error) error {
	replay, sub := h.Subscribe(ctx)
	defer sub.Close()

	for _, p := range replay {
		if err := fn(p); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-sub.Receive():
			if !ok {
				return nil
			}
			if err := fn(msg.Data); err != nil {
				return err
			}
		}
	}
}

func send(sink Sink, p Patch) error {
	switch p.Op {
	case OpShow:
		if err := sink.SendComponent(View(p.Toast),
			datastar.WithSelector(ContainerSelector),
			datastar.WithMode(datastar.ElementPatchModePrepend),
		); err != nil {
			return err
		}
		return sink.SendSignals(map[string]any{ActiveSignal: DOMID(p.Toast.ID)})
	case OpEnter, OpExit:
		return sink.SendComponent(View(p.Toast))
	case OpHide:
		if err := sink.SendComponent(empty,
			datastar.WithSelector("#"+DOMID(p.Toast.ID)),
			datastar.WithMode(datastar.ElementPatchModeRemove),
		); err != nil {
			return err
		}
		return sink.SendSignals(map[string]any{ActiveSignal: ""})
	}
	return nil
}
