package metrics

import (
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics. A nil *MetricsManager is
// valid and records nothing.
type MetricsManager struct {
	Registry                *prometheus.Registry
	ReviewsSubmittedTotal   prometheus.Counter
	ReviewSubmitFailures    *prometheus.CounterVec // by reason
	ReviewDeletesTotal      prometheus.Counter
	HistoryLoadsTotal       *prometheus.CounterVec // by result
	OrdersPlacedTotal       prometheus.Counter
	OrderStatusChangesTotal *prometheus.CounterVec // by new status
	HTTPRequestsTotal       *prometheus.CounterVec
	HTTPRequestLatency      *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	namespace := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		ReviewsSubmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Total number of reviews committed together with their rating aggregate.",
		}),
		ReviewSubmitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_submit_failures_total",
			Help:      "Review submissions that did not commit, by reason.",
		}, []string{"reason"}),
		ReviewDeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_deletes_total",
			Help:      "Total number of reviews removed by admins.",
		}),
		HistoryLoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_loads_total",
			Help:      "Order history loads, by result.",
		}, []string{"result"}),
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders created from carts.",
		}),
		OrderStatusChangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status transitions, by new status.",
		}, []string{"status"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_latency_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.ReviewsSubmittedTotal,
		m.ReviewSubmitFailures,
		m.ReviewDeletesTotal,
		m.HistoryLoadsTotal,
		m.OrdersPlacedTotal,
		m.OrderStatusChangesTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) ReviewSubmitted() {
	if m == nil {
		return
	}
	m.ReviewsSubmittedTotal.Inc()
}

func (m *MetricsManager) ReviewSubmitFailed(reason string) {
	if m == nil {
		return
	}
	m.ReviewSubmitFailures.WithLabelValues(reason).Inc()
}

func (m *MetricsManager) ReviewDeleted() {
	if m == nil {
		return
	}
	m.ReviewDeletesTotal.Inc()
}

func (m *MetricsManager) HistoryLoaded(result string) {
	if m == nil {
		return
	}
	m.HistoryLoadsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsManager) OrderPlaced() {
	if m == nil {
		return
	}
	m.OrdersPlacedTotal.Inc()
}

func (m *MetricsManager) OrderStatusChanged(status string) {
	if m == nil {
		return
	}
	m.OrderStatusChangesTotal.WithLabelValues(status).Inc()
}

// ObserveHTTP records one served request.
func (m *MetricsManager) ObserveHTTP(route, method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, code).Inc()
	m.HTTPRequestLatency.WithLabelValues(route, method).Observe(seconds)
}

// NewMetricsServer builds the HTTP server exposing /metrics. Returns nil when
// no port is configured.
func NewMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) *http.Server {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	appLogger.Info("Prometheus metrics server configured", zap.String("port", port), zap.String("path", "/metrics"))
	return &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
}
