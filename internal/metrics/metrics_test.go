package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

func TestMetrics_Observer(t *testing.T) {
	t.Parallel()
	m := New()
	v := viewcache.ViewDashboardStats

	m.Hit(v)
	m.Hit(v)
	m.Miss(v)
	m.Join(v)
	m.Invalidated(v)
	m.Computed(v, 10*time.Millisecond, nil)
	m.Computed(v, 20*time.Millisecond, errors.New("store down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits.WithLabelValues(string(v))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses.WithLabelValues(string(v))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheJoins.WithLabelValues(string(v))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidations.WithLabelValues(string(v))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recomputeFailures.WithLabelValues(string(v))))
	assert.Equal(t, 1, testutil.CollectAndCount(m.recomputeDuration))
}

func TestMetrics_Instrument(t *testing.T) {
	t.Parallel()
	m := New()
	h := m.Instrument("GET /api/views/{key}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/views/dashboardStats", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "GET /api/views/{key}", "503")))
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()
	m := New()
	m.Hit(viewcache.ViewLowStockItems)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `fieldservice_viewcache_hits_total{view="lowStockItems"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
