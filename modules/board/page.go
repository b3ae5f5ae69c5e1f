package board

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/surface"
)

const stylesheet = `
.toast-container { position: fixed; inset: 0; pointer-events: none; display: flex; flex-direction: column; align-items: center; gap: .5rem; padding: 1rem; }
.toast { pointer-events: auto; display: flex; gap: .75rem; min-width: 18rem; max-width: 28rem; min-height: var(--toast-height, auto);
  padding: .75rem 1rem; border-radius: .5rem; background: #1f2933; color: #f5f7fa; box-shadow: 0 6px 20px rgba(0,0,0,.25);
  transition: opacity var(--toast-transition) ease, transform var(--toast-transition) ease; }
.toast--top { margin-bottom: auto; }
.toast--bottom { margin-top: auto; }
.toast--center { margin-block: auto; }
.toast--entering, .toast--leaving { opacity: 0; transform: translateY(-.75rem); }
.toast--visible { opacity: 1; transform: none; }
.toast__image { width: 2.5rem; height: 2.5rem; border-radius: .25rem; object-fit: cover; }
.toast__body { flex: 1; }
.toast__title { margin: 0; font-weight: 600; }
.toast__description, .toast__timeline { margin: .25rem 0 0; font-size: .875rem; opacity: .8; }
.toast__close { background: none; border: 0; color: inherit; font-size: 1.25rem; cursor: pointer; }
`

// Page renders the board document with an empty toast container. The body
// opens the toast stream on load and the stream replays what is attached.
func Page(datastarScript string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Toasts</title>
<script type="module" src="%s"></script>
<style>%s</style>
</head>
<body data-signals="{%s: ''}" data-init="@get('/stream')">
`, templ.EscapeString(datastarScript), stylesheet, surface.ActiveSignal); err != nil {
			return err
		}
		if err := surface.Container().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}
