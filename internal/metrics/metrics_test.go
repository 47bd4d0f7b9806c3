package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow(t *testing.T) {
	reg := prometheus.NewRegistry()
	w, err := NewWorkflow(reg)
	require.NoError(t, err)

	w.Transition("forward", "draft", "in-progress")
	w.Transition("forward", "draft", "in-progress")
	w.Rejected("finalize", "invalid_transition")

	assert.Equal(t, float64(2), testutil.ToFloat64(w.transitions.WithLabelValues("forward", "draft", "in-progress")))
	assert.Equal(t, float64(1), testutil.ToFloat64(w.rejected.WithLabelValues("finalize", "invalid_transition")))

	_, err = NewWorkflow(reg)
	assert.Error(t, err, "second registration on the same registry must fail")
}

func TestWorkflow_Nil(t *testing.T) {
	var w *Workflow
	assert.NotPanics(t, func() {
		w.Transition("forward", "draft", "in-progress")
		w.Rejected("forward", "forbidden")
	})
}
