// Package handler provides type-safe HTTP request handling on top of net/http.
//
// Handlers receive a bound request value and return a Response:
//
//	type DismissRequest struct {
//		ID uuid.UUID `path:"id"`
//	}
//
//	func dismiss(ctx handler.Context, req DismissRequest) handler.Response {
//		if err := sched.Dismiss(ctx, req.ID); err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.Empty()
//	}
//
//	r.Post("/toasts/{id}/dismiss", handler.Wrap(dismiss,
//		handler.WithBinders[DismissRequest](binder.Path(chi.URLParam)),
//	))
//
// # Responses
//
// JSON and JSONError render the JSONResponse envelope. Templ renders a templ
// component as HTML, or as a DataStar element patch when the request came
// from DataStar. Empty writes a bare status code. SSE keeps the connection
// open and hands the handler a StreamContext for pushing element patches and
// signals.
//
// # Errors
//
// Errors returned by binders or by Response.Render go to the ErrorHandler.
// HTTPError carries a status code, ValidationError carries per-field
// messages and maps to 422. NewErrorHandler logs with the chi request ID and
// can route messages for DataStar clients to a Notifier.
package handler
