package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments calls to the products API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the upstream request metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "product_console",
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Requests sent to the products API",
			},
			[]string{"method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "product_console",
				Subsystem: "upstream",
				Name:      "request_duration_seconds",
				Help:      "Latency of products API requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// observe records one request; code 0 means no response arrived.
func (m *Metrics) observe(method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(method, label).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
