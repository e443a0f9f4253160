package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatecore",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "estatecore",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	emailsEnqueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estatecore",
			Subsystem: "email",
			Name:      "enqueued_total",
			Help:      "Total number of notification emails enqueued.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		emailsEnqueued,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordEmailEnqueued counts a queued notification email by kind
func RecordEmailEnqueued(kind string) {
	emailsEnqueued.WithLabelValues(kind).Inc()
}

// Handler exposes the registry for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
