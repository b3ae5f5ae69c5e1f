package surface

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
)

const (
	// ContainerID is the DOM id of the element toasts are prepended into.
	ContainerID = "toast-container"

	// ContainerSelector selects the toast container.
	ContainerSelector = "#" + ContainerID
)

// DOMID returns the element id of a toast.
func DOMID(id uuid.UUID) string {
	return "toast-" + id.String()
}

// DismissURL is the endpoint the close button posts to.
func DismissURL(id uuid.UUID) string {
	return "/toasts/" + id.String() + "/dismiss"
}

// View renders a single toast element.
func View(t Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="%s" class="%s" role="status" aria-live="polite" style="%s">`,
			DOMID(t.ID), classes(t), styleAttr(t))

		if t.ImageURL != "" {
			fmt.Fprintf(&b, `<img class="toast__image" src="%s" alt="">`,
				templ.EscapeString(string(templ.URL(t.ImageURL))))
		}

		b.WriteString(`<div class="toast__body">`)
		if t.Title != "" {
			fmt.Fprintf(&b, `<p class="toast__title">%s</p>`, templ.EscapeString(t.Title))
		}
		if t.Description != "" {
			fmt.Fprintf(&b, `<p class="toast__description">%s</p>`, templ.EscapeString(t.Description))
		}
		if t.Timeline != "" {
			fmt.Fprintf(&b, `<time class="toast__timeline">%s</time>`, templ.EscapeString(t.Timeline))
		}
		b.WriteString(`</div>`)

		fmt.Fprintf(&b, `<button type="button" class="toast__close" aria-label="Dismiss" data-on:click="@post('%s')">&times;</button>`,
			DismissURL(t.ID))
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Container renders the empty element toasts are prepended into.
func Container() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="%s" class="toast-container" aria-live="polite"></div>`, ContainerID)
		return err
	})
}

func classes(t Toast) string {
	placement := string(t.Style.Placement)
	if placement == "" {
		placement = "top"
	}
	phase := t.Phase
	if phase == "" {
		phase = PhaseVisible
	}
	return "toast toast--" + placement + " toast--" + string(phase)
}

func styleAttr(t Toast) string {
	s := fmt.Sprintf("--toast-transition: %dms", t.Transition.Milliseconds())
	if t.Style.Height > 0 {
		s += fmt.Sprintf("; --toast-height: %dpx", t.Style.Height)
	}
	return s
}

// empty is patched with remove mode; the element list must be blank.
var empty = templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
