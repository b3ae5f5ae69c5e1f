// Package surface is the browser-facing host surface for toasts.
//
// Renderer and Animator implement the toast collaborator interfaces on top of
// a Hub. The hub keeps the set of attached toasts and fans every change out
// as a Patch to connected DataStar streams:
//
//	hub := surface.NewHub(32, log)
//	sched, _ := toast.New(surface.NewRenderer(hub),
//		toast.WithAnimator(surface.NewAnimator(hub, nil)),
//	)
//
//	r.Get("/stream", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
//		return handler.SSE(func(s handler.StreamContext) error {
//			return surface.Stream(hub, s)
//		})
//	}))
//
// Patches map to DataStar element patches: a new toast is prepended into
// #toast-container, phase changes morph the element by id and detaching
// removes it. Phases are exposed as CSS classes (toast--entering,
// toast--visible, toast--leaving) and the transition length as the
// --toast-transition custom property, so the page stylesheet drives the
// actual animation.
//
// Payloads are Content values. A plain string payload is used as the title.
//
// Feed sends the same replay and patches as JSON Frames to non-browser
// clients, for example over a WebSocket.
package surface
