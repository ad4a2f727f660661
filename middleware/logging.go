package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"startup-registration/metrics"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// RequestLogger logs one line per request and records the HTTP metrics.
// It wraps the whole router so unmatched requests and preflights are seen
// too; router resolves the route template used as the metric label.
func RequestLogger(log *slog.Logger, m *metrics.Metrics, router *mux.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
			route := routeTemplate(router, p.Request)
			elapsed := time.Since(p.TimeStamp)

			m.HTTPRequestsTotal.WithLabelValues(route, p.Request.Method, strconv.Itoa(p.StatusCode)).Inc()
			m.HTTPRequestDuration.WithLabelValues(route, p.Request.Method).Observe(elapsed.Seconds())

			level := slog.LevelInfo
			if p.StatusCode >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(p.Request.Context(), level, "http request",
				"method", p.Request.Method,
				"path", p.URL.Path,
				"route", route,
				"status", p.StatusCode,
				"bytes", p.Size,
				"duration", elapsed,
				"remote", p.Request.RemoteAddr,
			)
		})
	}
}

func routeTemplate(router *mux.Router, r *http.Request) string {
	var match mux.RouteMatch
	if router != nil && router.Match(r, &match) && match.Route != nil {
		if tpl, err := match.Route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// Recover turns a panic in a handler into a 500 and logs it.
func Recover(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return handlers.RecoveryHandler(
			handlers.RecoveryLogger(recoveryLogger{log: log}),
			handlers.PrintRecoveryStack(false),
		)(next)
	}
}

type recoveryLogger struct {
	log *slog.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.log.Error("panic recovered", "panic", fmt.Sprint(args...))
}
