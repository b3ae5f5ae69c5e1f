package surface

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Content is the payload rendered inside a toast.
type Content struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Timeline    string `json:"timeline,omitempty"` // free-form time label, e.g. "2 min ago"
	ImageURL    string `json:"image_url,omitempty"`
}

func (c Content) validate() error {
	if strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.Description) == "" {
		return ErrEmptyContent
	}
	return nil
}

// contentOf accepts Content, *Content or a plain string used as the title.
func contentOf(payload any) (Content, error) {
	switch v := payload.(type) {
	case Content:
		return v, v.validate()
	case *Content:
		if v == nil {
			return Content{}, ErrEmptyContent
		}
		return *v, v.validate()
	case string:
		c := Content{Title: v}
		return c, c.validate()
	default:
		return Content{}, fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
}

// Phase is the visual phase of an attached toast.
type Phase string

const (
	PhaseEntering Phase = "entering"
	PhaseVisible  Phase = "visible"
	PhaseLeaving  Phase = "leaving"
)

// Toast is an attached toast as seen by the surface.
type Toast struct {
	ID    uuid.UUID
	Content
	Style      toast.Style
	Transition time.Duration
	Phase      Phase
}
