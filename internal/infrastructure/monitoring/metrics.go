package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Pipeline metrics
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec
	Analyses      *prometheus.CounterVec

	// Model metrics
	AIRequestDuration prometheus.Histogram
	AIRequestErrors   prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	registry *prometheus.Registry
	stop     chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
}

// Snapshot holds current metric values for JSON API
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	TotalAnalyses int64   `json:"total_analyses"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	totalDuration float64
	requestCount  int64
}

// NewMetrics creates a new metrics collector with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		startTime: time.Now(),
		registry:  registry,
		stop:      make(chan struct{}),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelens_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitelens_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitelens_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitelens_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Pipeline metrics
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitelens_stage_duration_seconds",
				Help:    "Analysis stage duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		StageErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelens_stage_errors_total",
				Help: "Total number of analysis stage failures",
			},
			[]string{"stage"},
		),
		Analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelens_analyses_total",
				Help: "Total number of page analyses by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),

		// Model metrics
		AIRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitelens_ai_request_duration_seconds",
				Help:    "Model request duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		AIRequestErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sitelens_ai_request_errors_total",
				Help: "Total number of failed model requests",
			},
		),

		// Cache metrics
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelens_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"operation"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitelens_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"operation"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitelens_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// Registry exposes the metrics registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Close stops the uptime updater.
func (m *Metrics) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// updateUptime continuously updates the uptime metric until Close.
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Uptime.Set(time.Since(m.startTime).Seconds())
		case <-m.stop:
			return
		}
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	m.snapshot.requestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordStage records one analysis stage execution.
func (m *Metrics) RecordStage(stage string, duration time.Duration, err error) {
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		m.StageErrors.WithLabelValues(stage).Inc()
	}
}

// RecordAnalysis records a completed pipeline operation.
func (m *Metrics) RecordAnalysis(operation, outcome string) {
	m.Analyses.WithLabelValues(operation, outcome).Inc()

	m.mu.Lock()
	m.snapshot.TotalAnalyses++
	m.mu.Unlock()
}

// RecordAIRequest records a model round trip.
func (m *Metrics) RecordAIRequest(duration time.Duration, err error) {
	m.AIRequestDuration.Observe(duration.Seconds())
	if err != nil {
		m.AIRequestErrors.Inc()
	}
}

// RecordCacheHit records a cache hit for an operation.
func (m *Metrics) RecordCacheHit(operation string) {
	m.CacheHits.WithLabelValues(operation).Inc()

	m.mu.Lock()
	m.snapshot.CacheHits++
	m.mu.Unlock()
}

// RecordCacheMiss records a cache miss for an operation.
func (m *Metrics) RecordCacheMiss(operation string) {
	m.CacheMisses.WithLabelValues(operation).Inc()

	m.mu.Lock()
	m.snapshot.CacheMisses++
	m.mu.Unlock()
}

// GetSnapshot returns current metric values for the JSON health API.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.requestCount > 0 {
		snap.AvgDurationMS = snap.totalDuration / float64(snap.requestCount) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
