// Package board serves a single-page toast board backed by a toast scheduler.
//
// Routes:
//
//	GET  /                      board page (DataStar driven)
//	GET  /stream                SSE stream of surface patches
//	GET  /ws                    WebSocket feed of JSON frames
//	GET  /stats                 scheduler snapshot
//	GET  /healthz               readiness checks
//	POST /toasts                submit a toast
//	POST /toasts/{id}/dismiss   dismiss a queued or active toast
//	POST /toasts/active/cancel  cancel the active presentation
//	POST /drain                 discard the queue and end the active toast
//
// When Config.AuthSecret is set, submit, cancel and drain require an HS256
// bearer token (see SignToken). Request errors from DataStar clients are shown
// on the board as toasts of Config.ErrorPreset instead of JSON bodies.
package board
