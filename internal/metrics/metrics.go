// Package metrics owns the prometheus registry of the API server
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hasnain-nisan/admindash/internal/events"
)

const namespace = "admindash"

// Metrics holds the server collectors
type Metrics struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	changes  *prometheus.CounterVec
}

// New creates a registry holding the HTTP and entity-change collectors
// together with the Go runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entities",
			Name:      "changes_total",
			Help:      "Entity changes by entity and change type.",
		}, []string{"entity", "type"}),
	}
	reg.MustRegister(
		m.requests,
		m.duration,
		m.changes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one served request. route is the route name, or the
// path when the request matched no named route.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(took.Seconds())
}

// RecordEvent counts an entity change. It has the events.Handler signature so
// it can be subscribed directly.
func (m *Metrics) RecordEvent(_ context.Context, ev events.Event) error {
	m.changes.WithLabelValues(ev.Entity, string(ev.Type)).Inc()
	return nil
}
