package board

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/toastkit/binder"
	"github.com/dmitrymomot/toastkit/handler"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/preset"
	"github.com/dmitrymomot/toastkit/pkg/surface"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Scheduler is the part of *toast.Scheduler the board drives.
type Scheduler interface {
	Submit(req toast.Request) (uuid.UUID, error)
	Dismiss(id uuid.UUID)
	CancelActive()
	Drain()
	Stats(ctx context.Context) (toast.Stats, error)
}

// Option configures a Service.
type Option func(*Service)

// WithHealthCheck adds a readiness check served by /healthz.
func WithHealthCheck(name string, check func(context.Context) error) Option {
	return func(s *Service) {
		if check != nil {
			s.checks[name] = check
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service serves the toast board: the page, its event stream and the
// submission and control endpoints.
type Service struct {
	cfg          Config
	sched        Scheduler
	hub          *surface.Hub
	presets      preset.Applier
	limiter      *rate.Limiter
	checks       map[string]func(context.Context) error
	logger       *slog.Logger
	errorHandler handler.ErrorHandler

	// Error toasts on the board, keyed by message.
	noticeMu      sync.Mutex
	notices       map[string]uuid.UUID
	noticeLimiter *rate.Limiter
}

// NewService creates the board. A nil presets uses the built-in set.
func NewService(cfg Config, sched Scheduler, hub *surface.Hub, presets preset.Applier, opts ...Option) *Service {
	if presets == nil {
		presets = preset.Defaults()
	}
	s := &Service{
		cfg:           cfg,
		sched:         sched,
		hub:           hub,
		presets:       presets,
		limiter:       newLimiter(cfg.SubmitRatePerSec, cfg.SubmitBurst),
		checks:        make(map[string]func(context.Context) error),
		logger:        slog.New(slog.DiscardHandler),
		notices:       make(map[string]uuid.UUID),
		noticeLimiter: newLimiter(cfg.NoticeRatePerSec, cfg.NoticeBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("board"))
	s.errorHandler = handler.NewErrorHandler(s.logger, s.notify)
	return s
}

// Handle returns the board router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/stream", handler.Wrap(s.stream,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/stats", handler.Wrap(s.stats,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))
	r.Get("/healthz", httpserver.HealthCheckHandler(s.logger, s.checks))

	r.Get("/ws", s.feed)
	r.Post("/toasts/{id}/dismiss", handler.Wrap(s.dismiss,
		handler.WithBinders[DismissRequest](badRequest(binder.Path(chi.URLParam))),
		handler.WithErrorHandler[DismissRequest](s.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(s.authorize)
		r.Post("/toasts", handler.Wrap(s.submit,
			handler.WithBinders[SubmitRequest](badRequest(binder.JSON())),
			handler.WithErrorHandler[SubmitRequest](s.errorHandler),
		))
		r.Post("/toasts/active/cancel", handler.Wrap(s.cancelActive,
			handler.WithErrorHandler[struct{}](s.errorHandler),
		))
		r.Post("/drain", handler.Wrap(s.drain,
			handler.WithErrorHandler[struct{}](s.errorHandler),
		))
	})

	return r
}

// newLimiter returns an unlimited limiter for a non-positive rate.
func newLimiter(perSec float64, burst int) *rate.Limiter {
	limit := rate.Inf
	if perSec > 0 {
		limit = rate.Limit(perSec)
	}
	return rate.NewLimiter(limit, max(burst, 1))
}

// notify shows request errors of DataStar clients as toasts on the board.
// Auth and throttling errors are left to the JSON envelope. A message already
// on the board is not queued twice, and new ones share a limiter of their own.
func (s *Service) notify(ctx handler.Context, info handler.ErrorInfo) bool {
	switch info.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}

	s.noticeMu.Lock()
	if _, ok := s.notices[info.Message]; ok {
		s.noticeMu.Unlock()
		return true
	}
	if !s.noticeLimiter.Allow() {
		s.noticeMu.Unlock()
		s.logger.DebugContext(ctx, "error toast throttled", slog.String("message", info.Message))
		return false
	}
	id := uuid.New()
	s.notices[info.Message] = id
	s.noticeMu.Unlock()

	req := toast.Request{
		ID:         id,
		Payload:    surface.Content{Title: info.Message},
		OnComplete: func(toast.Outcome) { s.forgetNotice(id) },
	}
	if err := s.presets.Apply(s.cfg.ErrorPreset, &req); err != nil {
		req.Priority = toast.PriorityMax
		req.Display = 5 * time.Second
	}
	if _, err := s.sched.Submit(req); err != nil {
		s.forgetNotice(id)
		s.logger.WarnContext(ctx, "failed to surface request error", logger.Error(err))
		return false
	}
	return true
}

// forgetNotice releases the message held by the error toast id. Queued
// toasts that are dismissed or drained never complete, so the control
// handlers release them too.
func (s *Service) forgetNotice(id uuid.UUID) {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	for msg, held := range s.notices {
		if held == id {
			delete(s.notices, msg)
			return
		}
	}
}

func (s *Service) forgetNotices() {
	s.noticeMu.Lock()
	clear(s.notices)
	s.noticeMu.Unlock()
}
