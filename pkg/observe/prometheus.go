package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/loom-ui/loom/pkg/recon"
)

// MetricsConfig configures the Prometheus build observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "recon").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for build duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus build observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "loom",
		Subsystem:   "recon",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Metrics is a recon.BuildObserver that exports build pass metrics.
//
// Metrics collected:
//   - loom_recon_builds_total: Counter of build passes by trigger
//   - loom_recon_build_duration_seconds: Histogram of pass duration by trigger
//   - loom_recon_nodes_built_total: Counter of freshly built nodes
//   - loom_recon_nodes_reused_total: Counter of reuse decisions
//   - loom_recon_renders_total: Counter of render invocations
//   - loom_recon_state_updates_applied_total: Counter of applied state updates
//   - loom_recon_builds_in_flight: Gauge of passes currently running
//
// Example:
//
//	metrics := observe.NewMetrics(observe.WithNamespace("myapp"))
//	builder := recon.NewBuilder(metrics)
//	http.Handle("/metrics", promhttp.Handler())
type Metrics struct {
	buildsTotal         *prometheus.CounterVec
	buildDuration       *prometheus.HistogramVec
	nodesBuilt          prometheus.Counter
	nodesReused         prometheus.Counter
	rendersTotal        prometheus.Counter
	stateUpdatesApplied prometheus.Counter
	buildsInFlight      prometheus.Gauge
}

var _ recon.BuildObserver = (*Metrics)(nil)

// NewMetrics creates and registers the build metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builds_total",
			Help:        "Total number of build passes by trigger",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger"}),

		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_duration_seconds",
			Help:        "Build pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"trigger"}),

		nodesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_built_total",
			Help:        "Total number of freshly built tree nodes",
			ConstLabels: config.ConstLabels,
		}),

		nodesReused: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_reused_total",
			Help:        "Total number of subtree reuse decisions",
			ConstLabels: config.ConstLabels,
		}),

		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of component render invocations",
			ConstLabels: config.ConstLabels,
		}),

		stateUpdatesApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_updates_applied_total",
			Help:        "Total number of state updates applied during rebuilds",
			ConstLabels: config.ConstLabels,
		}),

		buildsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builds_in_flight",
			Help:        "Number of build passes currently running",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// BuildStarted implements recon.BuildObserver.
func (m *Metrics) BuildStarted(root *recon.ScopeRoot, trigger recon.BuildTrigger) {
	m.buildsInFlight.Inc()
}

// ComponentRendered implements recon.BuildObserver.
func (m *Metrics) ComponentRendered(c recon.Component) {
	m.rendersTotal.Inc()
}

// NodeReused implements recon.BuildObserver.
func (m *Metrics) NodeReused(node *recon.TreeNode) {
	m.nodesReused.Inc()
}

// BuildFinished implements recon.BuildObserver.
func (m *Metrics) BuildFinished(root *recon.ScopeRoot, stats recon.BuildStats) {
	m.buildsInFlight.Dec()
	trigger := stats.Trigger.String()
	m.buildsTotal.WithLabelValues(trigger).Inc()
	m.buildDuration.WithLabelValues(trigger).Observe(stats.Duration.Seconds())
	m.nodesBuilt.Add(float64(stats.NodesBuilt))
	m.stateUpdatesApplied.Add(float64(stats.StateUpdatesApplied))
}
