// Package observability wires the Prometheus instruments shared by the
// transport and the dispatcher.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus instruments. A nil *Metrics is a
// valid no-op receiver so tests can skip registration entirely.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	lookupRetries prometheus.Counter
}

// New registers the instruments with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderdesk",
			Name:      "rpc_requests_total",
			Help:      "JSON-RPC requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orderdesk",
			Name:      "rpc_request_duration_seconds",
			Help:      "JSON-RPC request handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		lookupRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "orderdesk",
			Name:      "lookup_retries_total",
			Help:      "Order lookups retried after a transient data source failure.",
		}),
	}
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// LookupRetried records one retried lookup attempt.
func (m *Metrics) LookupRetried() {
	if m == nil {
		return
	}
	m.lookupRetries.Inc()
}
