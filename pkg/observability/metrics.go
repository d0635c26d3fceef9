package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/latticehq/lattice/pkg/domain"
)

// Metrics instruments document edits. Wire Hooks() into the editor and
// expose the registry via promhttp in the host.
type Metrics struct {
	updates     *prometheus.CounterVec
	reorders    prometheus.Counter
	deletes     *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	violations  *prometheus.CounterVec
}

// New creates and registers the edit metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_node_updates_total",
				Help: "Total number of applied node patches",
			},
			[]string{"kind", "mode"},
		),
		reorders: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lattice_reorders_total",
				Help: "Total number of applied sibling reorders",
			},
		),
		deletes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_node_deletes_total",
				Help: "Total number of deleted nodes",
			},
			[]string{"kind"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_resolutions_total",
				Help: "Total number of navigation resolutions by outcome",
			},
			[]string{"outcome"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_violations_total",
				Help: "Total number of validation findings by code",
			},
			[]string{"code"},
		),
	}
	reg.MustRegister(m.updates, m.reorders, m.deletes, m.resolutions, m.violations)
	return m
}

// Hooks returns edit hooks that record the metrics.
func (m *Metrics) Hooks() domain.EditHooks {
	return domain.EditHooks{
		OnUpdate: func(ctx context.Context, e *domain.UpdateEvent) {
			if !e.Applied {
				return
			}
			mode := e.Mode
			if mode == "" {
				mode = domain.ModeDesktop
			}
			m.updates.WithLabelValues(string(e.Kind), string(mode)).Inc()
		},
		OnReorder: func(ctx context.Context, e *domain.ReorderEvent) {
			if e.Applied {
				m.reorders.Inc()
			}
		},
		OnDelete: func(ctx context.Context, e *domain.DeleteEvent) {
			if e.Applied {
				m.deletes.WithLabelValues(string(e.Kind)).Inc()
			}
		},
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			outcome := string(e.Outcome)
			if e.Err != nil {
				outcome = "error"
			}
			m.resolutions.WithLabelValues(outcome).Inc()
		},
		OnViolation: func(ctx context.Context, e *domain.ViolationEvent) {
			for _, v := range e.Violations {
				m.violations.WithLabelValues(string(v.Code)).Inc()
			}
		},
	}
}
