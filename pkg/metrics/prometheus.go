// Package metrics provides Prometheus metrics for the yotei extraction engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the extraction engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Extraction outcome metrics
	modelExtractions prometheus.Counter
	patternFallbacks prometheus.Counter
	parseFailures    prometheus.Counter
	transportErrors  prometheus.Counter
	eventsExtracted  *prometheus.CounterVec // by provenance

	// Batch and dedup metrics
	batchTexts     prometheus.Counter
	dedupeDropped  prometheus.Counter
	lastBatchBytes prometheus.Gauge

	// Model performance
	modelLatency prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "yotei",
		subsystem:        "extraction",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.modelExtractions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_extractions_total",
		Help:      "Total number of model-path extraction attempts",
	})

	m.patternFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pattern_fallbacks_total",
		Help:      "Total number of extractions that fell back to the pattern path",
	})

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_failures_total",
		Help:      "Total number of model responses that failed to parse",
	})

	m.transportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transport_errors_total",
		Help:      "Total number of model backend transport failures",
	})

	m.eventsExtracted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_extracted_total",
			Help:      "Total number of candidate events emitted, by provenance",
		},
		[]string{"provenance"},
	)

	m.batchTexts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_texts_total",
		Help:      "Total number of texts processed through batch extraction",
	})

	m.dedupeDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dedupe_dropped_total",
		Help:      "Total number of candidate events superseded during dedup",
	})

	m.lastBatchBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_batch_bytes",
		Help:      "Size in bytes of the most recent batch input",
	})

	m.modelLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_latency_milliseconds",
		Help:      "Histogram of model backend call latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers delegating to the global manager.

// RecordModelExtraction counts one model-path attempt.
func RecordModelExtraction() {
	if globalManager.enabled {
		globalManager.modelExtractions.Inc()
	}
}

// RecordPatternFallback counts one fallback to the pattern path.
func RecordPatternFallback() {
	if globalManager.enabled {
		globalManager.patternFallbacks.Inc()
	}
}

// RecordParseFailure counts one unparseable model response.
func RecordParseFailure() {
	if globalManager.enabled {
		globalManager.parseFailures.Inc()
	}
}

// RecordTransportError counts one backend transport failure.
func RecordTransportError() {
	if globalManager.enabled {
		globalManager.transportErrors.Inc()
	}
}

// RecordEventsExtracted counts emitted candidates for a provenance.
func RecordEventsExtracted(provenance string, count int) {
	if globalManager.enabled && count > 0 {
		globalManager.eventsExtracted.WithLabelValues(provenance).Add(float64(count))
	}
}

// RecordBatchText counts one text processed in batch mode.
func RecordBatchText() {
	if globalManager.enabled {
		globalManager.batchTexts.Inc()
	}
}

// RecordDedupeDropped counts candidates superseded during dedup.
func RecordDedupeDropped(count int) {
	if globalManager.enabled && count > 0 {
		globalManager.dedupeDropped.Add(float64(count))
	}
}

// UpdateLastBatchBytes records the size of the most recent batch input.
func UpdateLastBatchBytes(n int) {
	if globalManager.enabled {
		globalManager.lastBatchBytes.Set(float64(n))
	}
}

// RecordModelLatency records one model call duration in milliseconds.
func RecordModelLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.modelLatency.Observe(latencyMs)
	}
}

// GetRegistry returns the custom registry all engine metrics live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
