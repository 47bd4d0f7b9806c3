// Package metrics holds the domain counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Workflow counts report and assignment transitions. A nil *Workflow is
// valid and records nothing.
type Workflow struct {
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

// NewWorkflow creates the workflow counters and registers them on reg.
func NewWorkflow(reg prometheus.Registerer) (*Workflow, error) {
	w := &Workflow{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitrack_workflow_transitions_total",
				Help: "Workflow actions applied, by action and resulting status.",
			},
			[]string{"action", "from", "to"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitrack_workflow_rejected_total",
				Help: "Workflow actions refused, by action and reason.",
			},
			[]string{"action", "reason"},
		),
	}
	for _, c := range []prometheus.Collector{w.transitions, w.rejected} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Transition records an applied action.
func (w *Workflow) Transition(action, from, to string) {
	if w == nil {
		return
	}
	w.transitions.WithLabelValues(action, from, to).Inc()
}

// Rejected records a refused action.
func (w *Workflow) Rejected(action, reason string) {
	if w == nil {
		return
	}
	w.rejected.WithLabelValues(action, reason).Inc()
}
