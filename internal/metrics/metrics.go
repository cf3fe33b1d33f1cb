// Package metrics holds the Prometheus instruments for the story gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the namespace of all gateway metrics.
	Namespace = "storysync"
)

// Metrics holds every Prometheus instrument emitted by the server. A nil
// *Metrics is valid and records nothing, so metric emission can never
// affect the result of the operation that emits it.
type Metrics struct {
	SignOperationsTotal   *prometheus.CounterVec
	SignDurationSeconds   prometheus.Histogram
	SyncRequestsTotal     *prometheus.CounterVec
	SyncDurationSeconds   prometheus.Histogram
	SyncStoriesReturned   prometheus.Histogram
	CatalogVersion        prometheus.Gauge
	VersionConflictsTotal prometheus.Counter
}

// New creates and registers all gateway metrics with reg. Passing nil
// registers with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SignOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "signer",
				Name:      "operations_total",
				Help:      "Signed URL issuance attempts by outcome",
			},
			[]string{"outcome"},
		),
		SignDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "signer",
				Name:      "duration_seconds",
				Help:      "Latency of signed URL issuance",
				Buckets:   prometheus.DefBuckets,
			},
		),
		SyncRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "sync",
				Name:      "requests_total",
				Help:      "Delta sync requests by outcome",
			},
			[]string{"outcome"},
		),
		SyncDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "sync",
				Name:      "duration_seconds",
				Help:      "Latency of delta sync handling",
				Buckets:   prometheus.DefBuckets,
			},
		),
		SyncStoriesReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "sync",
				Name:      "stories_returned",
				Help:      "Changed stories returned per sync response",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		CatalogVersion: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "catalog",
				Name:      "version",
				Help:      "Current catalog version",
			},
		),
		VersionConflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "catalog",
				Name:      "version_conflicts_total",
				Help:      "Optimistic-lock conflicts retried by the version store",
			},
		),
	}
}

// RecordSign records one signed URL issuance attempt.
func (m *Metrics) RecordSign(ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.SignOperationsTotal.WithLabelValues(outcome).Inc()
	m.SignDurationSeconds.Observe(elapsed.Seconds())
}

// RecordSync records one handled delta sync request.
func (m *Metrics) RecordSync(ok bool, returned int, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.SyncRequestsTotal.WithLabelValues(outcome).Inc()
	m.SyncDurationSeconds.Observe(elapsed.Seconds())
	m.SyncStoriesReturned.Observe(float64(returned))
}

// RecordCatalogVersion records the catalog version after a mutation.
func (m *Metrics) RecordCatalogVersion(version int64) {
	if m == nil {
		return
	}
	m.CatalogVersion.Set(float64(version))
}

// RecordVersionConflict counts one retried optimistic-lock conflict.
func (m *Metrics) RecordVersionConflict() {
	if m == nil {
		return
	}
	m.VersionConflictsTotal.Inc()
}
