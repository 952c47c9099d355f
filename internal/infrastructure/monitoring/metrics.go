package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Manifest fetch metrics
	ManifestFetches  *prometheus.CounterVec
	ManifestDuration prometheus.Histogram

	// Cache metrics
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CacheCoalesces prometheus.Counter

	// Bridge metrics
	BridgeEvents  *prometheus.CounterVec
	BridgeDropped prometheus.Counter

	// Overlay metrics
	OverlayPublished  prometheus.Counter
	OverlaySuppressed prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "embed_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "embed_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ManifestFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "embed_manifest_fetches_total",
				Help: "Total number of manifest fetch attempts by result",
			},
			[]string{"result"},
		),
		ManifestDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "embed_manifest_fetch_duration_seconds",
				Help:    "Manifest fetch duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),

		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "embed_cache_hits_total",
				Help: "Total number of manifest cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "embed_cache_misses_total",
				Help: "Total number of manifest cache misses",
			},
		),
		CacheCoalesces: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "embed_cache_coalesced_total",
				Help: "Total number of requests coalesced onto an in-flight fetch",
			},
		),

		BridgeEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "embed_bridge_events_total",
				Help: "Total number of normalized bridge events by type",
			},
			[]string{"type"},
		),
		BridgeDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "embed_bridge_dropped_total",
				Help: "Total number of inbound bridge messages dropped",
			},
		),

		OverlayPublished: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "embed_overlay_rects_published_total",
				Help: "Total number of overlay rectangles published",
			},
		),
		OverlaySuppressed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "embed_overlay_rects_suppressed_total",
				Help: "Total number of overlay updates suppressed as jitter",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "embed_ws_connections",
				Help: "Number of active WebSocket bridge connections",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "embed_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordManifestFetch records a manifest fetch attempt
func (m *Metrics) RecordManifestFetch(result string, duration time.Duration) {
	m.ManifestFetches.WithLabelValues(result).Inc()
	m.ManifestDuration.Observe(duration.Seconds())
}

// CacheHit counts a cache hit
func (m *Metrics) CacheHit() { m.CacheHits.Inc() }

// CacheMiss counts a cache miss that initiated a fetch
func (m *Metrics) CacheMiss() { m.CacheMisses.Inc() }

// CacheCoalesced counts a request served by an in-flight fetch
func (m *Metrics) CacheCoalesced() { m.CacheCoalesces.Inc() }

// RecordBridgeEvent counts a normalized bridge event
func (m *Metrics) RecordBridgeEvent(eventType string) {
	m.BridgeEvents.WithLabelValues(eventType).Inc()
}

// RecordBridgeDropped counts a dropped inbound message
func (m *Metrics) RecordBridgeDropped() {
	m.BridgeDropped.Inc()
}

// RecordOverlayPublish counts an overlay rectangle outcome
func (m *Metrics) RecordOverlayPublish(published bool) {
	if published {
		m.OverlayPublished.Inc()
	} else {
		m.OverlaySuppressed.Inc()
	}
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
