package middleware

import (
	"net/http"
	"time"

	"github.com/mcoot/pokerclub/internal/metrics"
)

// Metrics creates middleware that records request latency by method and status
func Metrics(recorder *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &ResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			recorder.HTTPRequest(r.Method, wrapped.status, time.Since(start).Seconds())
		})
	}
}
