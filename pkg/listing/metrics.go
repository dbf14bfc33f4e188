package listing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors a controller reports to
type Metrics struct {
	fetches  *prometheus.CounterVec
	stale    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the listing collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admindash",
			Subsystem: "listing",
			Name:      "fetches_total",
			Help:      "Settled list fetches by list, trigger and outcome.",
		}, []string{"list", "trigger", "outcome"}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admindash",
			Subsystem: "listing",
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer fetch was issued.",
		}, []string{"list"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "admindash",
			Subsystem: "listing",
			Name:      "fetch_duration_seconds",
			Help:      "Data source latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"list"}),
	}
	if reg != nil {
		reg.MustRegister(m.fetches, m.stale, m.duration)
	}
	return m
}

func (m *Metrics) observe(list string, trigger Trigger, err error, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.fetches.WithLabelValues(list, string(trigger), outcome).Inc()
	m.duration.WithLabelValues(list).Observe(took.Seconds())
}

func (m *Metrics) discarded(list string) {
	if m == nil {
		return
	}
	m.stale.WithLabelValues(list).Inc()
}
