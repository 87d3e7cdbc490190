// Package metrics exposes prometheus counters/gauges for the governance
// dispatcher, raffle workflow, and vote tallying. This module never starts
// an HTTP server; the embedder registers the collectors into its own
// registry and serves them however it already serves /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the governance engine emits.
type Metrics struct {
	commandsExecuted *prometheus.CounterVec
	raffleTicks      *prometheus.CounterVec
	votesTallied     *prometheus.CounterVec
	epochsClosed     prometheus.Counter
	currentEpochSeats prometheus.Gauge
}

var (
	once     sync.Once
	instance *Metrics
)

// Default returns the process-wide Metrics instance, registering its
// collectors into prometheus.DefaultRegisterer on first use.
func Default() *Metrics {
	once.Do(func() {
		instance = New(prometheus.DefaultRegisterer)
	})
	return instance
}

// New builds a Metrics instance and registers its collectors into reg. Use
// this instead of Default when the embedder maintains its own registry
// (e.g. to avoid collisions across multiple governance instances in one
// process).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commandsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_commands_executed_total",
			Help: "Count of dispatcher commands executed, by command name and outcome.",
		}, []string{"command", "outcome"}),
		raffleTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_raffle_progress_ticks_total",
			Help: "Count of raffle progress events emitted, by event kind.",
		}, []string{"kind"}),
		votesTallied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_votes_tallied_total",
			Help: "Count of votes closed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		epochsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "governance_epochs_closed_total",
			Help: "Count of epochs closed.",
		}),
		currentEpochSeats: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "governance_current_epoch_counted_seats",
			Help: "Total counted seats configured for the currently active epoch's most recent raffle.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.commandsExecuted,
			m.raffleTicks,
			m.votesTallied,
			m.epochsClosed,
			m.currentEpochSeats,
		)
	}
	return m
}

func (m *Metrics) ObserveCommandExecuted(command, outcome string) {
	if m == nil {
		return
	}
	m.commandsExecuted.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) ObserveRaffleTick(kind string) {
	if m == nil {
		return
	}
	m.raffleTicks.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveVoteTallied(kind, outcome string) {
	if m == nil {
		return
	}
	m.votesTallied.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveEpochClosed() {
	if m == nil {
		return
	}
	m.epochsClosed.Inc()
}

func (m *Metrics) SetCurrentEpochSeats(seats int) {
	if m == nil {
		return
	}
	m.currentEpochSeats.Set(float64(seats))
}
