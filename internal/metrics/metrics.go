// Package metrics holds the Prometheus collectors of the dashboard backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/dentaldesk/internal/models"
)

const namespace = "dentaldesk"

// Metrics is a private registry with the backend's collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests   *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
	cartMutations *prometheus.CounterVec
	invoiceTotal  prometheus.Histogram
	nowWatchers   prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Invoice cart mutations, by operation.",
		}, []string{"op"}),
		invoiceTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_total_dollars",
			Help:      "Invoice totals after insurance, observed on every cart mutation.",
			Buckets:   []float64{0, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		}),
		nowWatchers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "now_marker_watchers",
			Help:      "Open now-marker streams.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.cartMutations,
		m.invoiceTotal,
		m.nowWatchers,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// CartMutation counts one cart operation ("create", "add", "change", "remove", "delete").
func (m *Metrics) CartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveInvoiceTotal(total models.Money) {
	if m == nil {
		return
	}
	m.invoiceTotal.Observe(total.Float())
}

// WatcherStarted and WatcherStopped bracket a now-marker stream.
func (m *Metrics) WatcherStarted() {
	if m == nil {
		return
	}
	m.nowWatchers.Inc()
}

func (m *Metrics) WatcherStopped() {
	if m == nil {
		return
	}
	m.nowWatchers.Dec()
}
