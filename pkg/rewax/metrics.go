package rewax

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/rewax/pkg/vdom"
)

// MetricsConfig shapes the collectors created by NewMetrics. Registry
// defaults to prometheus.DefaultRegisterer; a nil Registry registers nothing.
type MetricsConfig struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
	Buckets     []float64 // redraw duration histogram
	Registry    prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metric namespace (default "rewax").
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metric subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels attaches constant labels to every collector.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the redraw duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegisterer is mostly for tests, which need a private registry to
// avoid duplicate registration panics.
func WithRegisterer(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rewax",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors updated by a runtime.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	passes        *prometheus.CounterVec
	passDuration  prometheus.Histogram
	evictions     *prometheus.CounterVec
	cleanups      prometheus.Counter
	patches       *prometheus.CounterVec
	queuedRedraws prometheus.Counter
	instances     prometheus.Gauge
}

// NewMetrics creates and registers the runtime collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of render passes, by mode (static or redraw)",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redraw_duration_seconds",
			Help:        "Redraw duration in seconds, render through patch",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		evictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "memo_evictions_total",
			Help:        "Total number of memo records swept as stale, by category",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),

		cleanups: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmount_cleanups_total",
			Help:        "Total number of unmount cleanups invoked",
			ConstLabels: config.ConstLabels,
		}),

		patches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_applied_total",
			Help:        "Total number of patches applied to host trees, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		queuedRedraws: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "queued_redraws_total",
			Help:        "Total number of re-entrant redraw requests that were queued",
			ConstLabels: config.ConstLabels,
		}),

		instances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_instances",
			Help:        "Number of instances currently held in the arena",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordPass(mode string) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(mode).Inc()
}

func (m *Metrics) recordRedraw(d time.Duration, patches []vdom.Patch) {
	if m == nil {
		return
	}
	m.passDuration.Observe(d.Seconds())
	for _, p := range patches {
		m.patches.WithLabelValues(p.Op.String()).Inc()
	}
}

func (m *Metrics) recordEvictions(evicted [numCategories]int) {
	if m == nil {
		return
	}
	for i, n := range evicted {
		if n > 0 {
			m.evictions.WithLabelValues(Category(i).String()).Add(float64(n))
		}
	}
}

func (m *Metrics) recordCleanup() {
	if m == nil {
		return
	}
	m.cleanups.Inc()
}

func (m *Metrics) recordQueued() {
	if m == nil {
		return
	}
	m.queuedRedraws.Inc()
}

func (m *Metrics) setInstances(n int) {
	if m == nil {
		return
	}
	m.instances.Set(float64(n))
}
