package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OutgoingLatency tracks calls made through the pooled HTTP client.
	OutgoingLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cariangkot_outgoing_request_duration_seconds",
			Help:    "Latency of outgoing HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"url", "method", "status"},
	)

	// BackendStatus API Status (up/down)
	BackendStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cariangkot_backend_status",
			Help: "Status of the angkot recommendation backend (0 = last call failed, 1 = last call succeeded)",
		},
		[]string{"backend_url"},
	)
)

var (
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cariangkot_recommendation_requests_total",
		Help: "Number of angkot recommendation requests by origin S2 cell and outcome",
	}, []string{"origin_cell", "outcome"})

	StraightLineDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cariangkot_straight_line_distance_meters",
		Help:    "Great-circle distance between the start and end points of accepted recommendation requests",
		Buckets: prometheus.ExponentialBuckets(250, 2, 10),
	})

	DistanceQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cariangkot_distance_queries_total",
		Help: "Number of distance computations served over HTTP",
	})
)
