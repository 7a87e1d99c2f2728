package server

import (
	"log/slog"
	"net/http"
	"time"

	"stayscraper/internal/logger"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// LoggerMiddleware attaches a trace-scoped logger to the request context and
// logs the start and end of every request.
func LoggerMiddleware(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}
			w.Header().Set(traceHeader, traceID)

			coreLogger := base.With("trace_id", traceID)
			httpLogger := coreLogger.With(
				"http_method", r.Method,
				"http_path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := logger.WithContext(r.Context(), coreLogger)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			httpLogger.Info("Request started")

			next.ServeHTTP(ww, r.WithContext(ctx))

			httpLogger.Info("Request finished",
				"status_code", ww.Status(),
				"bytes_written", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
