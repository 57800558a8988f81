package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/pokerclub/internal/model"
)

const namespace = "pokerclub"

// Recorder holds the service's Prometheus collectors
type Recorder struct {
	adjustments *prometheus.CounterVec
	points      *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
	failures    *prometheus.CounterVec
	publishes   prometheus.Counter
	httpLatency *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "adjustments_total",
			Help:      "Player point adjustments applied, by settlement source.",
		}, []string{"source"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "points_total",
			Help:      "Absolute points moved by settlements, by source and direction.",
		}, []string{"source", "direction"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "conflicts_total",
			Help:      "Transactions aborted because a document changed concurrently.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Operations that failed with an unexpected error.",
		}, []string{"operation"}),
		publishes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "publishes_total",
			Help:      "Leaderboard snapshots published.",
		}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(r.adjustments, r.points, r.conflicts, r.failures, r.publishes, r.httpLatency)
	return r
}

// Nop returns a Recorder registered with a throwaway registry
func Nop() *Recorder {
	return New(prometheus.NewRegistry())
}

// Settlement records one applied adjustment
func (r *Recorder) Settlement(source string, delta int) {
	r.adjustments.WithLabelValues(source).Inc()
	switch {
	case delta > 0:
		r.points.WithLabelValues(source, "awarded").Add(float64(delta))
	case delta < 0:
		r.points.WithLabelValues(source, "revoked").Add(float64(-delta))
	}
}

// OperationError classifies a failed operation. Conflicts and unexpected
// errors are counted; domain errors (not found, invalid state) are not.
func (r *Recorder) OperationError(operation string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, model.ErrConflict):
		r.conflicts.WithLabelValues(operation).Inc()
	case model.IsExpected(err):
	default:
		r.failures.WithLabelValues(operation).Inc()
	}
}

// LeaderboardPublished counts a published snapshot
func (r *Recorder) LeaderboardPublished() {
	r.publishes.Inc()
}

// HTTPRequest observes one served request
func (r *Recorder) HTTPRequest(method string, status int, seconds float64) {
	r.httpLatency.WithLabelValues(method, strconv.Itoa(status)).Observe(seconds)
}
