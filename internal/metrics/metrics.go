// Package metrics exposes simulation activity as Prometheus collectors fed by domain hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/logicsim/pkg/domain"
)

// Match outcomes used as the "outcome" label.
const (
	OutcomeSingle    = "single"
	OutcomeAmbiguous = "ambiguous"
	OutcomeNone      = "none"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Steps        *prometheus.CounterVec
	Traces       *prometheus.CounterVec
	Matches      *prometheus.CounterVec
	LatchUpdates *prometheus.HistogramVec
}

// New registers the collectors. Go runtime collectors are included when withRuntime is set.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logicsim_counter_steps_total",
				Help: "Total number of clock edges applied to counters",
			},
			[]string{"circuit"},
		),
		Traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logicsim_traces_total",
				Help: "Total number of finalized traces",
			},
			[]string{"circuit"},
		),
		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logicsim_matches_total",
				Help: "Candidate matching runs by outcome",
			},
			[]string{"circuit", "outcome"},
		),
		LatchUpdates: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logicsim_latch_updates",
				Help:    "Simultaneous updates applied per latch drive",
				Buckets: prometheus.LinearBuckets(1, 1, 8),
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.Steps, m.Traces, m.Matches, m.LatchUpdates)
	if withRuntime {
		m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns domain hooks that record every event.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Circuit).Inc()
		},
		OnTraceDone: func(_ context.Context, e *domain.TraceEvent) {
			m.Traces.WithLabelValues(e.Circuit).Inc()
		},
		OnMatch: func(_ context.Context, e *domain.MatchEvent) {
			m.Matches.WithLabelValues(e.Circuit, outcome(e.Result)).Inc()
		},
		OnLatchStep: func(_ context.Context, e *domain.LatchEvent) {
			m.LatchUpdates.WithLabelValues(e.Kind).Observe(float64(e.Steps))
		},
	}
}

func outcome(r domain.MatchResult) string {
	switch len(r.Matches) {
	case 0:
		return OutcomeNone
	case 1:
		return OutcomeSingle
	}
	return OutcomeAmbiguous
}
