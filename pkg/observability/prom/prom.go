// Package prom implements the observability hooks on Prometheus.
//
// All collectors live on a private registry so that several Metrics values
// (one per test, for example) never collide on the global default registry.
//
//	m := prom.New()
//	m.Register()
//	r.Handle("/metrics", m.Handler())
package prom

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/observability"
)

const namespace = "ontodag"

// Metrics holds every collector and implements [observability.OntologyHooks],
// [observability.StoreHooks] and [observability.HTTPHooks].
type Metrics struct {
	registry *prometheus.Registry

	operations    *prometheus.CounterVec
	opDuration    *prometheus.HistogramVec
	sessions      prometheus.Gauge
	storeRequests *prometheus.CounterVec
	storeBytes    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ontology",
				Name:      "operations_total",
				Help:      "Ontology operations by name and result (ok or error code)",
			},
			[]string{"operation", "result"},
		),
		opDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ontology",
				Name:      "operation_duration_seconds",
				Help:      "Time spent inside ontology operations",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"operation"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "live",
			Help:      "Number of live sessions",
		}),
		storeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "requests_total",
				Help:      "Snapshot store requests by backend and result (hit, miss, set)",
			},
			[]string{"backend", "result"},
		),
		storeBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "written_bytes_total",
				Help:      "Snapshot bytes written by backend",
			},
			[]string{"backend"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route pattern and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by method and route pattern",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		m.operations,
		m.opDuration,
		m.sessions,
		m.storeRequests,
		m.storeBytes,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Register installs m as the global ontology, store and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetOntologyHooks(m)
	observability.SetStoreHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnOperation(_ context.Context, op string, d time.Duration, err error) {
	m.operations.WithLabelValues(op, result(err)).Inc()
	m.opDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) OnSessions(_ context.Context, live int) {
	m.sessions.Set(float64(live))
}

func (m *Metrics) OnStoreHit(_ context.Context, backend string) {
	m.storeRequests.WithLabelValues(backend, "hit").Inc()
}

func (m *Metrics) OnStoreMiss(_ context.Context, backend string) {
	m.storeRequests.WithLabelValues(backend, "miss").Inc()
}

func (m *Metrics) OnStoreSet(_ context.Context, backend string, size int) {
	m.storeRequests.WithLabelValues(backend, "set").Inc()
	m.storeBytes.WithLabelValues(backend).Add(float64(size))
}

func (m *Metrics) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// result labels an operation outcome: "ok", the error code, or "error" for
// uncoded errors.
func result(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

var (
	_ observability.OntologyHooks = (*Metrics)(nil)
	_ observability.StoreHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
