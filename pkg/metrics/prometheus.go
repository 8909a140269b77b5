package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	fallbackStages   *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_upstream_requests_total",
				Help: "Upstream exchange-rate API calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxbot_upstream_duration_seconds",
				Help:    "Upstream call duration in seconds, retries included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_cache_lookups_total",
				Help: "Edge cache lookups by result (hit, miss, error)",
			},
			[]string{"result"},
		),
		fallbackStages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_history_fallback_total",
				Help: "History fallback stages attempted, by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxbot_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordUpstream records one upstream call.
func (r *Recorder) RecordUpstream(endpoint, outcome string, seconds float64) {
	r.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	r.upstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordCacheLookup records a cache hit, miss or error.
func (r *Recorder) RecordCacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordFallback records the outcome of one history fallback stage.
func (r *Recorder) RecordFallback(stage, outcome string) {
	r.fallbackStages.WithLabelValues(stage, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
