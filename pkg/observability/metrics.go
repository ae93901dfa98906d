// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the Portainer MCP bridge.
package observability

import "github.com/prometheus/client_golang/prometheus"

// RemoteBuckets defines histogram buckets for Portainer round trips,
// ranging from 10ms to 60s (image-heavy listings can be slow).
var RemoteBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// HTTPRequestsTotal counts inbound HTTP requests on the MCP HTTP
	// transports by method and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portainer_mcp_http_requests_total",
			Help: "Inbound HTTP requests",
		},
		[]string{"method", "status"},
	)

	// HTTPRequestDuration records inbound HTTP request duration in seconds.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portainer_mcp_http_request_duration_seconds",
			Help:    "Inbound HTTP request duration",
			Buckets: RemoteBuckets,
		},
		[]string{"method"},
	)

	// ActiveSessions tracks open SSE or streamable HTTP connections.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portainer_mcp_http_streams_active",
			Help: "Active streaming HTTP connections",
		},
	)

	// RemoteRequestsTotal counts requests sent to Portainer by operation and
	// HTTP status ("error" when no response arrived).
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portainer_mcp_remote_requests_total",
			Help: "Portainer API requests",
		},
		[]string{"operation", "status"},
	)

	// RemoteRequestDuration records Portainer round-trip latency in seconds.
	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portainer_mcp_remote_request_duration_seconds",
			Help:    "Portainer API request duration",
			Buckets: RemoteBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ActiveSessions,
		RemoteRequestsTotal,
		RemoteRequestDuration,
	)
}
