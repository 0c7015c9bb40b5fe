package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	registerOnce sync.Once

	composeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsterm",
			Subsystem: "compose",
			Name:      "templates_total",
			Help:      "Composed templates by mode and result.",
		},
		[]string{"mode", "result"},
	)
	payloadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wsterm",
			Subsystem: "compose",
			Name:      "payload_bytes",
			Help:      "Size of composed payloads in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"mode"},
	)
	sendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsterm",
			Subsystem: "connection",
			Name:      "sends_total",
			Help:      "Payload transmissions by mode and result.",
		},
		[]string{"mode", "result"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wsterm",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served by the metrics listener.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wsterm",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency of the metrics listener.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(composeTotal, payloadBytes, sendTotal, httpRequests, httpDuration)
	})
}

// RecordCompose counts one composition and, on success, its payload size.
func RecordCompose(mode string, size int, err error) {
	RegisterMetrics()
	if err != nil {
		composeTotal.WithLabelValues(mode, ResultError).Inc()
		return
	}
	composeTotal.WithLabelValues(mode, ResultOK).Inc()
	payloadBytes.WithLabelValues(mode).Observe(float64(size))
}

func RecordSend(mode string, err error) {
	RegisterMetrics()
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	sendTotal.WithLabelValues(mode, result).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
