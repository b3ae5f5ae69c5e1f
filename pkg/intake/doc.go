// Package intake accepts toast submissions from outside the process.
//
// Producers publish JSON messages on a Redis channel:
//
//	{"title": "Build finished", "preset": "success", "display": "4s"}
//
// A Consumer decodes each message, layers it over the named preset, waits on
// a token bucket and submits the result. Malformed or invalid messages are
// logged and skipped; they never stop the consumer. Decode and
// Message.Request are also used by the HTTP submit endpoint so both paths
// accept the same document.
//
// Every message is handled inside an "intake.message" consumer span; rejected
// messages end with an error status.
package intake
