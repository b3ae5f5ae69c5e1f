package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/preset"
	"github.com/dmitrymomot/toastkit/pkg/surface"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Message is the wire form of a toast submission. Scheduling fields left
// empty fall back to the named preset. Durations use time.ParseDuration
// syntax ("3s", "250ms").
type Message struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Timeline    string          `json:"timeline,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Preset      string          `json:"preset,omitempty"`
	Priority    *int            `json:"priority,omitempty"`
	Display     string          `json:"display,omitempty"`
	Transition  string          `json:"transition,omitempty"`
	Animated    *bool           `json:"animated,omitempty"`
	Placement   toast.Placement `json:"placement,omitempty"`
}

// Decode parses a single JSON message. Unknown fields are rejected.
func Decode(data []byte) (Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Message
	if err := dec.Decode(&m); err != nil {
		return Message{}, errors.Join(ErrMalformedMessage, err)
	}
	if dec.More() {
		return Message{}, fmt.Errorf("%w: trailing data", ErrMalformedMessage)
	}
	return m, nil
}

// Request builds a toast request from the preset named by the message and
// the fields the message overrides. The result still needs Validate.
func (m Message) Request(presets preset.Applier) (toast.Request, error) {
	var req toast.Request
	if err := presets.Apply(m.Preset, &req); err != nil {
		return toast.Request{}, err
	}

	if m.Priority != nil {
		p := *m.Priority
		if p < int(toast.PriorityMin) || p > int(toast.PriorityMax) {
			return toast.Request{}, errors.Join(toast.ErrInvalidRequest, toast.ErrInvalidPriority)
		}
		req.Priority = toast.Priority(p)
	}
	if m.Animated != nil {
		req.Animated = *m.Animated
	}
	if m.Placement != "" {
		req.Style.Placement = m.Placement
	}

	var err error
	if req.Display, err = parseDuration("display", m.Display, req.Display); err != nil {
		return toast.Request{}, err
	}
	if req.Transition, err = parseDuration("transition", m.Transition, req.Transition); err != nil {
		return toast.Request{}, err
	}

	req.Payload = surface.Content{
		Title:       m.Title,
		Description: m.Description,
		Timeline:    m.Timeline,
		ImageURL:    m.ImageURL,
	}
	return req, nil
}

func parseDuration(field, s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidDuration, field, err)
	}
	return d, nil
}
