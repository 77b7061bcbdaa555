// Package metrics counts command executions with prometheus collectors
// kept in a private registry per shell.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/footprint-tools/gshell/internal/registry"
)

const namespace = "gshell"

// Metrics holds the execution collectors.
type Metrics struct {
	reg *prometheus.Registry

	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	commands   prometheus.Gauge
	aliases    prometheus.Gauge

	mu          sync.Mutex
	commandSeen map[string]bool
	aliasSeen   map[string]bool
}

// New creates collectors registered in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg:         reg,
		commandSeen: make(map[string]bool),
		aliasSeen:   make(map[string]bool),
		executions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Total number of command executions by outcome.",
		}, []string{"command", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_duration_seconds",
			Help:      "Duration of command executions in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		commands: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_commands",
			Help:      "Number of registered commands.",
		}),
		aliases: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "defined_aliases",
			Help:      "Number of defined aliases.",
		}),
	}
}

// Registry exposes the prometheus registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Observe records one execution of command ending in status.
func (m *Metrics) Observe(command, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(command, status).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// OnEvent keeps the registry gauges current.
func (m *Metrics) OnEvent(e registry.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e.Kind {
	case registry.CommandRegistered:
		m.commandSeen[e.Name] = true
	case registry.CommandRemoved:
		delete(m.commandSeen, e.Name)
	case registry.AliasDefined:
		m.aliasSeen[e.Name] = true
	case registry.AliasRemoved:
		delete(m.aliasSeen, e.Name)
	}
	m.commands.Set(float64(len(m.commandSeen)))
	m.aliases.Set(float64(len(m.aliasSeen)))
}

// CommandStat is the execution summary of one command.
type CommandStat struct {
	Command  string
	Statuses map[string]int
	Total    int
	Mean     time.Duration
}

// Snapshot summarizes executions per command, sorted by name.
func (m *Metrics) Snapshot() ([]CommandStat, error) {
	families, err := m.reg.Gather()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*CommandStat)
	get := func(name string) *CommandStat {
		s, ok := stats[name]
		if !ok {
			s = &CommandStat{Command: name, Statuses: make(map[string]int)}
			stats[name] = s
		}
		return s
	}

	for _, mf := range families {
		switch mf.GetName() {
		case namespace + "_executions_total":
			for _, metric := range mf.GetMetric() {
				labels := make(map[string]string)
				for _, lp := range metric.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				n := int(metric.GetCounter().GetValue())
				s := get(labels["command"])
				s.Statuses[labels["status"]] += n
				s.Total += n
			}
		case namespace + "_execution_duration_seconds":
			for _, metric := range mf.GetMetric() {
				var command string
				for _, lp := range metric.GetLabel() {
					if lp.GetName() == "command" {
						command = lp.GetValue()
					}
				}
				h := metric.GetHistogram()
				if h.GetSampleCount() > 0 {
					mean := h.GetSampleSum() / float64(h.GetSampleCount())
					get(command).Mean = time.Duration(mean * float64(time.Second))
				}
			}
		}
	}

	out := make([]CommandStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Command < out[j].Command })
	return out, nil
}
