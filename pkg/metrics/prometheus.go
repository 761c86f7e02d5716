package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the domain Metrics port using Prometheus.
type Recorder struct {
	activityEvents  *prometheus.CounterVec
	activityDropped *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New registers the recorder's collectors on the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers on reg, which lets tests use a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		activityEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickfunds_activity_events_total",
				Help: "Activity events accepted by the pipeline",
			},
			[]string{"kind", "backend"},
		),
		activityDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickfunds_activity_dropped_total",
				Help: "Activity events dropped before reaching the backend",
			},
			[]string{"reason"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickfunds_errors_total",
				Help: "Errors encountered, by kind",
			},
			[]string{"type"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickfunds_cache_lookups_total",
				Help: "Cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),
		verifications: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickfunds_kyc_verifications_total",
				Help: "KYC verification outcomes by step",
			},
			[]string{"step", "result"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tickfunds_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordActivity(kind, backend string) {
	r.activityEvents.WithLabelValues(kind, backend).Inc()
}

func (r *Recorder) RecordActivityDropped(reason string) {
	r.activityDropped.WithLabelValues(reason).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(cache, result).Inc()
}

func (r *Recorder) RecordVerification(step string, ok bool) {
	result := "failed"
	if ok {
		result = "verified"
	}
	r.verifications.WithLabelValues(step, result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
