package middleware

import (
	"log/slog"
	"net/http"

	"github.com/1wzhdxtx/task-management-system/internal/api/shared"
)

// TraceMiddleware adds a trace ID to the request context. It should sit
// early in the middleware chain so every downstream handler and error
// response can correlate by the same ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
