// Package accesslog provides a middleware that records every HTTP call
// in a log message.
package accesslog

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// sugaredLogFormat is the format of the access log line.
// Uses fmt.Printf templating.
var sugaredLogFormat = "%s %s %s from %s - %s %dB in %s"

// Handler returns a middleware that records an access log message
// for every HTTP request being processed.
func Handler(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// associate request ID and correlation ID with the request context
			// so that they can be added to the log messages
			ctx := logger.WithRequest(r.Context(), r)
			r = r.WithContext(ctx)
			ww.Header().Set("X-Request-ID", logger.RequestID(ctx))

			defer func(start time.Time) {
				l := log.With(ctx)
				line := []any{
					r.Method,
					r.URL.Path,
					r.Proto,
					r.RemoteAddr,
					statusLabel(ww.Status()),
					ww.BytesWritten(),
					time.Since(start),
				}
				if ww.Status() >= http.StatusInternalServerError {
					l.Warnf(sugaredLogFormat, line...)
					return
				}
				l.Infof(sugaredLogFormat, line...)
			}(time.Now())

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(f)
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 100 && status < 300:
		return fmt.Sprintf("%d OK", status)
	case status >= 300 && status < 400:
		return fmt.Sprintf("%d Redirect", status)
	case status >= 400 && status < 500:
		return fmt.Sprintf("%d Client Error", status)
	case status >= 500:
		return fmt.Sprintf("%d Server Error", status)
	default:
		return fmt.Sprintf("%d Unknown", status)
	}
}
