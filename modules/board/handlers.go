package board

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/handler"
	"github.com/dmitrymomot/toastkit/pkg/intake"
	"github.com/dmitrymomot/toastkit/pkg/preset"
	"github.com/dmitrymomot/toastkit/pkg/surface"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// SubmitRequest is the JSON body of POST /toasts. It is the intake message.
type SubmitRequest = intake.Message

// DismissRequest addresses a single toast.
type DismissRequest struct {
	ID uuid.UUID `path:"id"`
}

// SubmitResponse is returned for accepted toasts.
type SubmitResponse struct {
	ID uuid.UUID `json:"id"`
}

// StatsResponse mirrors toast.Stats.
type StatsResponse struct {
	Active   *uuid.UUID     `json:"active,omitempty"`
	Priority toast.Priority `json:"priority,omitempty"`
	State    toast.State    `json:"state,omitempty"`
	Pending  int            `json:"pending"`
	Attached int            `json:"attached"`
	Streams  int            `json:"streams"`
}

// badRequest marks binder errors as client errors.
func badRequest(bind handler.Bind) handler.Bind {
	return func(r *http.Request, v any) error {
		if err := bind(r, v); err != nil {
			return errors.Join(handler.ErrBadRequest, err)
		}
		return nil
	}
}

// failure hands err to the router error handler.
type failure struct{ err error }

func (f failure) Render(http.ResponseWriter, *http.Request) error { return f.err }

func fail(err error) handler.Response { return failure{err: err} }

func (s *Service) page(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(Page(s.cfg.DatastarScript))
}

func (s *Service) stream(_ handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		return surface.Stream(s.hub, stream)
	})
}

func (s *Service) submit(_ handler.Context, req SubmitRequest) handler.Response {
	if !s.limiter.Allow() {
		return fail(handler.ErrTooManyRequests)
	}

	tr, err := req.Request(s.presets)
	if err != nil {
		return fail(mapError(err))
	}
	id, err := s.sched.Submit(tr)
	if err != nil {
		return fail(mapError(err))
	}
	return handler.JSON(SubmitResponse{ID: id}, handler.WithJSONStatus(http.StatusAccepted))
}

func (s *Service) dismiss(_ handler.Context, req DismissRequest) handler.Response {
	if req.ID == uuid.Nil {
		return fail(handler.ErrBadRequest)
	}
	s.sched.Dismiss(req.ID)
	s.forgetNotice(req.ID)
	return handler.Empty()
}

func (s *Service) cancelActive(_ handler.Context, _ struct{}) handler.Response {
	s.sched.CancelActive()
	return handler.Empty()
}

func (s *Service) drain(_ handler.Context, _ struct{}) handler.Response {
	s.sched.Drain()
	s.forgetNotices()
	return handler.Empty()
}

func (s *Service) stats(ctx handler.Context, _ struct{}) handler.Response {
	st, err := s.sched.Stats(ctx)
	if err != nil {
		return fail(mapError(err))
	}

	resp := StatsResponse{
		State:    st.State,
		Pending:  st.Pending,
		Attached: len(s.hub.Attached()),
		Streams:  s.hub.Subscribers(),
	}
	if st.Active != nil {
		id := st.Active.ID
		resp.Active = &id
		resp.Priority = st.Active.Priority
	}
	return handler.JSON(resp)
}

// mapError turns scheduler and intake errors into HTTP errors.
func mapError(err error) error {
	verr := handler.NewValidationError()
	switch {
	case errors.Is(err, toast.ErrInvalidPriority):
		verr.Add("priority", toast.ErrInvalidPriority.Error())
	case errors.Is(err, toast.ErrNegativeDuration):
		verr.Add("display", toast.ErrNegativeDuration.Error())
	case errors.Is(err, intake.ErrInvalidDuration):
		verr.Add("display", err.Error())
	case errors.Is(err, preset.ErrUnknownPreset):
		verr.Add("preset", err.Error())
	case errors.Is(err, toast.ErrInvalidRequest):
		verr.Add("request", err.Error())
	case errors.Is(err, toast.ErrClosed):
		return errors.Join(handler.ErrServiceUnavailable, err)
	default:
		return err
	}
	return verr
}
