// Package metrics collects Prometheus metrics for auth operations against
// the hosted service and exposes the scrape handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth operation labels.
const (
	OpSignUp  = "signup"
	OpSignIn  = "signin"
	OpSignOut = "signout"
	OpRefresh = "refresh"
)

// Collector counts auth outcomes and measures upstream latency.
type Collector struct {
	authTotal       *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
}

// NewCollector registers the portal's metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "supaportal_auth_total",
			Help: "Auth operations against the hosted service by outcome",
		}, []string{"op", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supaportal_upstream_latency_seconds",
			Help:    "Latency of calls to the hosted service",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.authTotal,
		c.upstreamLatency,
	)

	return c
}

// RecordAuth counts one auth operation, bucketed by success or failure.
func (c *Collector) RecordAuth(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.authTotal.WithLabelValues(op, outcome).Inc()
}

// ObserveUpstream records the duration of one call to the hosted service.
func (c *Collector) ObserveUpstream(op string, d time.Duration) {
	c.upstreamLatency.WithLabelValues(op).Observe(d.Seconds())
}

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
