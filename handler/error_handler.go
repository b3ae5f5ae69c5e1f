package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Notifier surfaces a classified error to the user who triggered it. It
// reports whether it did; otherwise the client gets the JSON envelope.
type Notifier func(ctx Context, info ErrorInfo) bool

// ErrorInfo is the classified form of a request error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
		LogLevel:   slog.LevelError,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = valErr.Error()
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler logs every error and then answers JSON clients with the
// error envelope. DataStar clients get the message through notify instead,
// followed by an empty event stream, unless notify declines it. A nil notify
// falls back to JSON for everyone.
func NewErrorHandler(log *slog.Logger, notify Notifier) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		if notify != nil && IsDataStar(r) && notify(ctx, info) {
			_ = ctx.SSE()
			return
		}

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response", logger.Error(renderErr))
		}
	}
}
