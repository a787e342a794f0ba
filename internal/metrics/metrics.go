// Package metrics exposes Prometheus collectors for the downloader.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the run's collectors on a private registry so tests can
// inspect them without touching global state.
type Metrics struct {
	Registry *prometheus.Registry

	PagesTotal    *prometheus.CounterVec
	BytesTotal    prometheus.Counter
	FetchDuration prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		PagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagezip_pages_total",
				Help: "Pages processed, labeled by outcome.",
			},
			[]string{"status"},
		),
		BytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pagezip_bytes_total",
				Help: "Total body bytes written to the archive.",
			},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pagezip_fetch_duration_seconds",
				Help:    "Wall-clock duration of individual page fetches.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(m.PagesTotal, m.BytesTotal, m.FetchDuration)
	return m
}

// ObserveSuccess records one archived page.
func (m *Metrics) ObserveSuccess(bytes int, duration time.Duration) {
	m.PagesTotal.WithLabelValues("ok").Inc()
	m.BytesTotal.Add(float64(bytes))
	m.FetchDuration.Observe(duration.Seconds())
}

// ObserveFailure records one skipped page.
func (m *Metrics) ObserveFailure() {
	m.PagesTotal.WithLabelValues("failed").Inc()
}
