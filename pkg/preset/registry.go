package preset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Registry holds the current preset set and swaps it atomically when the
// backing file changes. It is safe for concurrent use.
type Registry struct {
	cur atomic.Pointer[Set]
}

// NewRegistry creates a registry serving s.
func NewRegistry(s *Set) *Registry {
	r := &Registry{}
	r.cur.Store(s)
	return r
}

// Current returns the set in use.
func (r *Registry) Current() *Set { return r.cur.Load() }

// Store replaces the set in use.
func (r *Registry) Store(s *Set) { r.cur.Store(s) }

// Apply copies the named preset from the current set onto req.
func (r *Registry) Apply(name string, req *toast.Request) error {
	return r.Current().Apply(name, req)
}

// Watch reloads path whenever it is written, created or renamed into place,
// until ctx is done. A file that fails to load leaves the previous set in use.
func (r *Registry) Watch(ctx context.Context, path string, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("presets"))

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors replace files instead of writing them, so watch the directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			s, err := Load(path)
			if err != nil {
				log.WarnContext(ctx, "keeping previous presets", logger.Error(err))
				continue
			}
			r.Store(s)
			log.InfoContext(ctx, "presets reloaded", slog.Any("names", s.Names()))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "presets watcher error", logger.Error(err))
		}
	}
}
