// Package metrics registers the terminal's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	APIRequests   *prometheus.CounterVec
	APIDuration   *prometheus.HistogramVec
	Refreshes     *prometheus.CounterVec
	Retries       prometheus.Counter
	Redirects     prometheus.Counter
	Checkouts     *prometheus.CounterVec
	CheckoutTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend API requests by method and status class.",
		}, []string{"method", "status"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pos",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "session",
			Name:      "refreshes_total",
			Help:      "Access token refresh attempts by outcome.",
		}, []string{"outcome"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "api",
			Name:      "retries_total",
			Help:      "Requests replayed after a token refresh.",
		}),
		Redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "session",
			Name:      "login_redirects_total",
			Help:      "Sessions torn down and sent back to login.",
		}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "drafts",
			Name:      "checkouts_total",
			Help:      "Draft checkouts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		CheckoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "drafts",
			Name:      "checkout_amount_total",
			Help:      "Sum of checked out totals in the configured currency.",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.APIRequests,
			m.APIDuration,
			m.Refreshes,
			m.Retries,
			m.Redirects,
			m.Checkouts,
			m.CheckoutTotal,
		)
	}
	return m
}

// StatusClass buckets an HTTP status for low-cardinality labels.
func StatusClass(code int) string {
	switch {
	case code == 0:
		return "error"
	case code == 401:
		return "401"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
