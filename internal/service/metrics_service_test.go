package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *MetricsService, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/events", http.StatusOK, 5*time.Millisecond)
	m.RecordCacheLookup(true, time.Millisecond)
	m.RecordCacheLookup(false, time.Millisecond)
	m.RecordCacheLookup(false, time.Millisecond)
	m.RecordImageCleanup(nil)
	m.RecordImageCleanup(errors.New("gone"))
	m.RecordAuthorizationFailure("events.delete")

	assert.Equal(t, 1.0, counterValue(t, m, "arts_admin_http_requests_total", map[string]string{"method": "GET", "path": "/api/v1/events", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, m, "arts_admin_cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 2.0, counterValue(t, m, "arts_admin_cache_lookups_total", map[string]string{"result": "miss"}))
	assert.Equal(t, 1.0, counterValue(t, m, "arts_admin_image_cleanups_total", map[string]string{"result": "failed"}))
	assert.Equal(t, 1.0, counterValue(t, m, "arts_admin_authorization_failures_total", map[string]string{"endpoint": "events.delete"}))
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordCacheLookup(true, time.Millisecond)
	m.ObserveDBQuery("events.list", time.Millisecond)
	m.RecordImageCleanup(nil)
	m.RecordAuthorizationFailure("x")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
