// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notebook_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status class",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notebook_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notebook_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AuthEventsTotal counts auth workflow outcomes, e.g. ("login", "failure").
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notebook_auth_events_total",
			Help: "Authentication workflow outcomes by event and result",
		},
		[]string{"event", "result"},
	)

	NotesMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notebook_note_mutations_total",
			Help: "Note create, update and delete operations that were committed",
		},
		[]string{"op"},
	)
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
)
