// Package middleware provides HTTP middleware for the formsync API server.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/pkg/logging"
)

// Logger logs HTTP requests with structured logging. The request logger is
// put on the request context, tagged with the request id when chi's
// RequestID middleware runs first.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := logger.With().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Logger()
			ctx := logging.WithLogger(r.Context(), &reqLogger)
			if id := chimw.GetReqID(r.Context()); id != "" {
				ctx = logging.WithRequestID(ctx, id)
			}

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", wrapped.BytesWritten()).
				Dur("duration_ms", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
