package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Upstream API metrics
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests sent to the show metadata API.",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Latency of requests sent to the show metadata API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// View metrics
var (
	RenderedItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rendered_items_total",
			Help: "Total number of cards and list items written into containers.",
		},
		[]string{"container"},
	)

	StaleResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stale_responses_total",
			Help: "Total number of upstream responses discarded because a newer request superseded them.",
		},
		[]string{"flow"},
	)
)

// Outcome label values for UpstreamRequestsTotal.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "status_error"
	OutcomeNetwork   = "network_error"
	OutcomeMalformed = "malformed"
)

func init() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		RenderedItemsTotal,
		StaleResponsesTotal,
	)
}
