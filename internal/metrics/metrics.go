// Package metrics provides Prometheus collectors for the view cache and the
// HTTP surface. Collectors live on a private registry so tests and multiple
// processes in one binary do not collide with the global one.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

const namespace = "fieldservice"

// Metrics owns the registry and every collector registered on it.
type Metrics struct {
	reg *prometheus.Registry

	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheJoins         *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec
	recomputeFailures  *prometheus.CounterVec
	recomputeDuration  *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "viewcache",
			Name:      "hits_total",
			Help:      "Reads served from a fresh cache entry",
		}, []string{"view"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "viewcache",
			Name:      "misses_total",
			Help:      "Reads that started a recomputation",
		}, []string{"view"}),
		cacheJoins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "viewcache",
			Name:      "joins_total",
			Help:      "Reads that joined an in-flight recomputation",
		}, []string{"view"}),
		cacheInvalidations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "viewcache",
			Name:      "invalidations_total",
			Help:      "Cache entries marked stale by a mutation",
		}, []string{"view"}),
		recomputeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "viewcache",
			Name:      "recompute_failures_total",
			Help:      "Recomputations that returned an error",
		}, []string{"view"}),
		recomputeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "viewcache",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of view recomputations in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"view"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status_code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ---------------------------------------------------------------------------
// viewcache.Observer
// ---------------------------------------------------------------------------

var _ viewcache.Observer = (*Metrics)(nil)

func (m *Metrics) Hit(view viewcache.View)  { m.cacheHits.WithLabelValues(string(view)).Inc() }
func (m *Metrics) Miss(view viewcache.View) { m.cacheMisses.WithLabelValues(string(view)).Inc() }
func (m *Metrics) Join(view viewcache.View) { m.cacheJoins.WithLabelValues(string(view)).Inc() }

func (m *Metrics) Computed(view viewcache.View, took time.Duration, err error) {
	m.recomputeDuration.WithLabelValues(string(view)).Observe(took.Seconds())
	if err != nil {
		m.recomputeFailures.WithLabelValues(string(view)).Inc()
	}
}

func (m *Metrics) Invalidated(view viewcache.View) {
	m.cacheInvalidations.WithLabelValues(string(view)).Inc()
}

// ---------------------------------------------------------------------------
// HTTP
// ---------------------------------------------------------------------------

// Instrument records request count and latency. route should be the mux
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
