package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// Metrics creates request latency middleware for the API
func Metrics(recorder *metrics.Recorder) func(http.Handler) http.Handler {
	return middleware.Metrics(recorder)
}
