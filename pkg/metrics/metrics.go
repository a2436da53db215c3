// Package metrics exposes listkit activity as Prometheus metrics.
//
// A Collector implements the observer interfaces of the differ, adapter,
// paging and wshost packages, so one value can be handed to all of them:
//
//	m := metrics.New(metrics.WithNamespace("feed"))
//	a, err := listkit.NewAdapter(declare,
//	    adapter.WithDiffObserver(m),
//	    adapter.WithBindObserver(m),
//	)
//
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/listkit/pkg/adapter"
	"github.com/vango-dev/listkit/pkg/differ"
	"github.com/vango-dev/listkit/pkg/paging"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "listkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for diff duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the diff duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "listkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records diff, bind, page load and client metrics.
// It is safe for concurrent use.
type Collector struct {
	diffsTotal    *prometheus.CounterVec
	diffDuration  prometheus.Histogram
	updatesTotal  *prometheus.CounterVec
	bindsTotal    *prometheus.CounterVec
	pageLoads     *prometheus.CounterVec
	pageItems     prometheus.Counter
	clients       prometheus.Gauge
	broadcasts    prometheus.Counter
	displayedRows prometheus.Gauge
}

var (
	_ differ.Observer      = (*Collector)(nil)
	_ adapter.BindObserver = (*Collector)(nil)
	_ paging.Observer      = (*Collector)(nil)
)

// New registers the listkit metrics and returns their collector.
// Registering twice against the same registry panics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		diffsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diffs_total",
			Help:        "Total number of list diffs by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		diffDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diff_duration_seconds",
			Help:        "Time spent computing list diffs in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		updatesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_total",
			Help:        "Total number of applied update operations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		bindsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "binds_total",
			Help:        "Total number of unit binds by change kind",
			ConstLabels: config.ConstLabels,
		}, []string{"change"}),

		pageLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "page_loads_total",
			Help:        "Total number of page loads by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		pageItems: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "page_items_total",
			Help:        "Total number of items received from page loads",
			ConstLabels: config.ConstLabels,
		}),

		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ws_clients",
			Help:        "Number of connected WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),

		broadcasts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ws_broadcasts_total",
			Help:        "Total number of update batches broadcast to clients",
			ConstLabels: config.ConstLabels,
		}),

		displayedRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "displayed_rows",
			Help:        "Number of rows after the last applied diff",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// DiffComputed implements differ.Observer.
func (c *Collector) DiffComputed(oldLen, newLen int, updates []differ.Update, elapsed time.Duration) {
	c.diffsTotal.WithLabelValues("computed").Inc()
	c.diffDuration.Observe(elapsed.Seconds())
}

// DiffApplied implements differ.Observer.
func (c *Collector) DiffApplied(updates []differ.Update) {
	c.diffsTotal.WithLabelValues("applied").Inc()
	delta := 0
	for _, u := range updates {
		c.updatesTotal.WithLabelValues(u.Op.String()).Add(float64(u.Count))
		switch u.Op {
		case differ.OpInsert:
			delta += u.Count
		case differ.OpRemove:
			delta -= u.Count
		}
	}
	c.displayedRows.Add(float64(delta))
}

// DiffSuperseded implements differ.Observer.
func (c *Collector) DiffSuperseded() {
	c.diffsTotal.WithLabelValues("superseded").Inc()
}

// Bound implements adapter.BindObserver.
func (c *Collector) Bound(_ int, kind adapter.ChangeKind) {
	c.bindsTotal.WithLabelValues(kind.String()).Inc()
}

// PageLoaded implements paging.Observer.
func (c *Collector) PageLoaded(items int, err error) {
	if err != nil {
		c.pageLoads.WithLabelValues("error").Inc()
		return
	}
	c.pageLoads.WithLabelValues("success").Inc()
	c.pageItems.Add(float64(items))
}

// ClientConnected records a WebSocket client joining.
func (c *Collector) ClientConnected() { c.clients.Inc() }

// ClientDisconnected records a WebSocket client leaving.
func (c *Collector) ClientDisconnected() { c.clients.Dec() }

// Broadcast records one update batch sent to clients.
func (c *Collector) Broadcast() { c.broadcasts.Inc() }
