package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/mentormatch/core/metrics"
)

func TestPromSinkRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSolve(coremetrics.SolveEvent{
		Component: "joint",
		Status:    "optimal",
		Duration:  50 * time.Millisecond,
		Vars:      45,
		Nodes:     3,
	}))
	require.NoError(t, sink.RecordRepair(coremetrics.RepairEvent{
		Mode:     "mappings",
		Moves:    2,
		Resolved: true,
	}))

	assert.Equal(t, float64(1), testutil.ToFloat64(sink.solves.WithLabelValues("joint", "optimal")))
	assert.Equal(t, float64(1), testutil.ToFloat64(sink.repairs.WithLabelValues("mappings", "true")))
	assert.Equal(t, float64(2), testutil.ToFloat64(sink.moves))
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	_, err = NewPromSink(reg)
	assert.NoError(t, err)
}
