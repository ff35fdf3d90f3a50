package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// addressing pass.
type Metrics struct {
	StationsLoaded prometheus.Gauge
	ReceiverPairs  prometheus.Gauge
	PlanRunning    prometheus.Gauge

	PathsResolved     *prometheus.CounterVec // label: kind={I2,C3,I3,...}
	DispersionLookups *prometheus.CounterVec // label: outcome={pair,pair_reversed,global}

	PlanDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.StationsLoaded,
		m.ReceiverPairs,
		m.PlanRunning,
		m.PathsResolved,
		m.DispersionLookups,
		m.PlanDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "threestation",
			Name:      "stations_loaded",
			Help:      "Stations in the catalog, duplicates included.",
		}),
		ReceiverPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "threestation",
			Name:      "receiver_pairs",
			Help:      "Receiver pairs addressed by the plan.",
		}),
		PlanRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "threestation",
			Name:      "plan_running",
			Help:      "1 while the addressing plan is being built, 0 otherwise.",
		}),
		PathsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "threestation",
			Name:      "paths_resolved_total",
			Help:      "Artifact paths resolved, by artifact kind.",
		}, []string{"kind"}),
		DispersionLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "threestation",
			Name:      "dispersion_lookups_total",
			Help:      "Dispersion curve resolutions, by lookup outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "threestation",
			Name:      "plan_duration_seconds",
			Help:      "Duration of a complete addressing pass.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}
