package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsManager_Counters(t *testing.T) {
	m := NewMetricsManager("storefront-service")

	m.ReviewSubmitted()
	m.ReviewSubmitted()
	m.ReviewSubmitFailed("not_found")
	m.HistoryLoaded("ok")
	m.ObserveHTTP("/api/sweets", "GET", "200", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReviewsSubmittedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewSubmitFailures.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryLoadsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/sweets", "GET", "200")))
}

func TestMetricsManager_NilIsNoop(t *testing.T) {
	var m *MetricsManager
	assert.NotPanics(t, func() {
		m.ReviewSubmitted()
		m.ReviewSubmitFailed("x")
		m.ReviewDeleted()
		m.OrderPlaced()
		m.OrderStatusChanged("Concluído")
		m.ObserveHTTP("/", "GET", "200", 0)
	})
}
