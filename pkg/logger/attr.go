package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the HTTP request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ToastID records the toast identifier under the key "toast_id".
// The nil UUID yields an empty Attr.
func ToastID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("toast_id", id.String())
}

func Priority(p int) slog.Attr {
	return slog.Int("priority", p)
}

// State records a lifecycle state under the key "state".
func State(s string) slog.Attr {
	return slog.String("state", s)
}

// Reason records why a toast completed under the key "reason".
func Reason(r string) slog.Attr {
	return slog.String("reason", r)
}

func QueueDepth(n int) slog.Attr {
	return slog.Int("queue_depth", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Channel records a pub/sub channel name under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}
