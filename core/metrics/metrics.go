// Package metrics counts the commands an interpreter session runs.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for a single interpreter.
type Metrics struct {
	registry *prometheus.Registry

	commandsTotal *prometheus.CounterVec
}

// New creates a Metrics with its own registry so multiple interpreters (and
// tests) don't collide on the global one.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minishell",
			Name:      "commands_total",
			Help:      "Total commands run, labeled by name, whether it was a builtin and exit status.",
		}, []string{"command", "builtin", "status"}),
	}

	m.registry.MustRegister(m.commandsTotal)
	return m
}

// ObserveCommand counts a finished command.
func (m *Metrics) ObserveCommand(name string, builtin bool, status int) {
	m.commandsTotal.WithLabelValues(name, strconv.FormatBool(builtin), strconv.Itoa(status)).Inc()
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the Prometheus text format, suitable
// for the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
