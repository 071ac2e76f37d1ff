// Package metrics holds the Prometheus collectors of the check-in service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkin_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkin_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// CheckinTransitions counts state changes; via names the entry point.
	CheckinTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkin_transitions_total",
		Help: "Guest check-in state changes.",
	}, []string{"via", "state"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkin_import_rows_total",
		Help: "CSV import rows by outcome.",
	}, []string{"outcome"})

	LooseEmailMatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkin_loose_email_matches_total",
		Help: "Lookups answered by the email substring fallback.",
	})
)

// State renders a check-in flag as a label value.
func State(checkedIn bool) string {
	if checkedIn {
		return "in"
	}
	return "out"
}
