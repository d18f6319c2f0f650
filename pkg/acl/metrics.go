package acl

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks Prometheus metrics for engine operations.
//
// All metrics use the "permdeck_acl_" prefix. Methods handle a nil receiver
// gracefully, so a nil *Metrics acts as a no-op (zero overhead when metrics
// are disabled).
type Metrics struct {
	// EvaluationDuration tracks time to compute an effective permission set.
	EvaluationDuration prometheus.Histogram

	// EvaluationTotal counts evaluations by result.
	// Labels: result=[allowed, denied, unset]
	EvaluationTotal *prometheus.CounterVec

	// MutationTotal counts mutation engine calls by kind and outcome.
	// Labels: kind=[permission, group], outcome=[applied, noop, rejected]
	MutationTotal *prometheus.CounterVec

	// MutationDuration tracks time to apply a mutation.
	MutationDuration prometheus.Histogram

	// AttributionTotal counts attribution checks by verdict.
	// Labels: verdict=[group, direct, unset]
	AttributionTotal *prometheus.CounterVec
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics creates and registers engine Prometheus metrics.
//
// If registerer is nil, prometheus.DefaultRegisterer is used. The function
// is idempotent: metrics are registered exactly once even if called multiple
// times.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	metricsOnce.Do(func() {
		if registerer == nil {
			registerer = prometheus.DefaultRegisterer
		}

		m := &Metrics{
			EvaluationDuration: prometheus.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "permdeck_acl_evaluation_duration_seconds",
					Help:    "Time to compute an effective permission set",
					Buckets: prometheus.DefBuckets,
				},
			),
			EvaluationTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "permdeck_acl_evaluation_total",
					Help: "Total access evaluations by result",
				},
				[]string{"result"},
			),
			MutationTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "permdeck_acl_mutation_total",
					Help: "Total mutation engine calls by kind and outcome",
				},
				[]string{"kind", "outcome"},
			),
			MutationDuration: prometheus.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "permdeck_acl_mutation_duration_seconds",
					Help:    "Time to apply a mutation",
					Buckets: prometheus.DefBuckets,
				},
			),
			AttributionTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "permdeck_acl_attribution_total",
					Help: "Total group-attribution checks by verdict",
				},
				[]string{"verdict"},
			),
		}

		registerer.MustRegister(
			m.EvaluationDuration,
			m.EvaluationTotal,
			m.MutationTotal,
			m.MutationDuration,
			m.AttributionTotal,
		)

		metricsInstance = m
	})

	return metricsInstance
}

// ObserveEvaluation records the duration of an effective-set computation.
func (m *Metrics) ObserveEvaluation(duration time.Duration) {
	if m == nil {
		return
	}
	m.EvaluationDuration.Observe(duration.Seconds())
}

// ObserveDecision records the result of an access decision.
func (m *Metrics) ObserveDecision(result string) {
	if m == nil {
		return
	}
	m.EvaluationTotal.WithLabelValues(result).Inc()
}

// ObserveMutation records a mutation engine call.
func (m *Metrics) ObserveMutation(duration time.Duration, kind, outcome string) {
	if m == nil {
		return
	}
	m.MutationDuration.Observe(duration.Seconds())
	m.MutationTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveAttribution records an attribution check verdict.
func (m *Metrics) ObserveAttribution(verdict string) {
	if m == nil {
		return
	}
	m.AttributionTotal.WithLabelValues(verdict).Inc()
}
