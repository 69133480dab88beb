// Package observability provides Prometheus metrics for the forwarder.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLMBuckets covers completion latencies from 100ms to two minutes.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// ForwardRequestsTotal counts forwarder requests by route, mode and status class.
	ForwardRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kate_forward_requests_total",
			Help: "Forwarded requests",
		},
		[]string{"route", "mode", "status"},
	)

	// VendorLatency records how long the vendor completion call took.
	VendorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kate_vendor_latency_seconds",
			Help:    "Vendor completion latency",
			Buckets: LLMBuckets,
		},
		[]string{"vendor", "model"},
	)

	// VendorFailuresTotal counts failed vendor calls.
	VendorFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kate_vendor_failures_total",
			Help: "Vendor failures",
		},
		[]string{"vendor", "model"},
	)

	// StreamFragmentsTotal counts fragments relayed to clients.
	StreamFragmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kate_stream_fragments_total",
			Help: "Relayed stream fragments",
		},
		[]string{"route"},
	)

	// StreamingConnections tracks event streams currently open.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kate_streaming_connections_active",
			Help: "Active event streams",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ForwardRequestsTotal,
		VendorLatency,
		VendorFailuresTotal,
		StreamFragmentsTotal,
		StreamingConnections,
	)
}

// StatusClass turns 404 into "4xx".
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
