package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes.
//
// Without checks it always answers 200 {"status":"alive"}. With checks each
// one runs against the request context; the handler answers 200
// {"status":"ready"} when all pass and 503 {"status":"not_ready"} otherwise,
// listing the result per check.
func HealthCheckHandler(log *slog.Logger, checks map[string]func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks,omitempty"`
		}{Status: "alive"}
		code := http.StatusOK

		if len(names) > 0 {
			body.Status = "ready"
			body.Checks = make(map[string]string, len(names))
			for _, name := range names {
				if err := checks[name](r.Context()); err != nil {
					log.WarnContext(r.Context(), "readiness check failed",
						slog.String("check", name),
						logger.Error(err))
					body.Checks[name] = err.Error()
					body.Status = "not_ready"
					code = http.StatusServiceUnavailable
					continue
				}
				body.Checks[name] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}
}
