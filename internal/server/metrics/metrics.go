// Package metrics exposes authentication outcomes and hashing latency as
// Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics implements services.Recorder on a dedicated registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	hashTime   prometheus.Histogram
}

// New creates a registry with the Go and process collectors plus the
// authkernel metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authkernel_operations_total",
				Help: "Total number of authentication operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		hashTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "authkernel_password_hash_duration_seconds",
				Help:    "Time spent hashing passwords in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
	}

	registry.MustRegister(m.operations, m.hashTime)
	return m
}

// Registry returns the registry to serve on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRegister(outcome string) {
	m.operations.WithLabelValues("register", outcome).Inc()
}

func (m *Metrics) ObserveLogin(outcome string) {
	m.operations.WithLabelValues("login", outcome).Inc()
}

func (m *Metrics) ObserveVerify(outcome string) {
	m.operations.WithLabelValues("verify", outcome).Inc()
}

func (m *Metrics) ObserveProfile(outcome string) {
	m.operations.WithLabelValues("profile", outcome).Inc()
}

func (m *Metrics) ObserveHash(d time.Duration) {
	m.hashTime.Observe(d.Seconds())
}
