// Package observability exposes machine activity as Prometheus metrics. The
// collector turns the engine's observation hooks into counters and
// histograms, so wiring it up is one WithHooks option away.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier"
)

// Collector owns the Prometheus instruments for one or more machines.
// Machines are told apart by the "machine" label, so a single Collector can
// serve every machine in the process.
type Collector struct {
	entries  *prometheus.CounterVec
	exits    *prometheus.CounterVec
	failures *prometheus.CounterVec
	ticks    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector builds the instruments and registers them with reg, panicking
// on collision like prometheus.MustRegister. Pass
// prometheus.DefaultRegisterer to feed the default /metrics handler.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_state_entries_total",
				Help: "Total number of state entries",
			},
			[]string{"machine", "state"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_state_exits_total",
				Help: "Total number of state exits",
			},
			[]string{"machine", "state"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_state_failures_total",
				Help: "Total number of state hook failures",
			},
			[]string{"machine", "state", "phase"},
		),
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_ticks_total",
				Help: "Total number of machine ticks",
			},
			[]string{"machine"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "espalier_tick_duration_seconds",
				Help:    "Duration of machine ticks",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
			[]string{"machine"},
		),
	}
	reg.MustRegister(c.entries, c.exits, c.failures, c.ticks, c.duration)
	return c
}

// Hooks returns the observation callbacks that feed the instruments. Combine
// with other hook sets via espalier.MergeHooks.
func (c *Collector) Hooks() espalier.Hooks {
	return espalier.Hooks{
		OnStateEnter: func(e espalier.StateEvent) {
			c.entries.WithLabelValues(e.Machine, string(e.State)).Inc()
		},
		OnStateExit: func(e espalier.StateEvent) {
			c.exits.WithLabelValues(e.Machine, string(e.State)).Inc()
		},
		OnTick: func(e espalier.TickEvent) {
			c.ticks.WithLabelValues(e.Machine).Inc()
			c.duration.WithLabelValues(e.Machine).Observe(e.Duration.Seconds())
		},
		OnFailure: func(e espalier.FailureEvent) {
			c.failures.WithLabelValues(e.Machine, string(e.State), e.Phase.String()).Inc()
		},
	}
}
