package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMetrics_FCFSTextbook(t *testing.T) {
	// GIVEN the FCFS textbook run without overhead
	k := newTestKernel(t, 0, &FCFSScheduler{}, textbookWorkload()...)
	tl := k.Run()

	// WHEN metrics are computed
	m := CalculateMetrics(k.Processes(), tl, k.Clock())

	// THEN WT (0,4,6), TAT (5,7,10), RT equal to WT for a non-preemptive run
	assert.InDelta(t, 10.0/3.0, m.AvgWaitingTime, 1e-12)
	assert.InDelta(t, 22.0/3.0, m.AvgTurnaroundTime, 1e-12)
	assert.InDelta(t, 10.0/3.0, m.AvgResponseTime, 1e-12)
	assert.InDelta(t, 3.0/12.0, m.Throughput, 1e-12)
	assert.InDelta(t, 100.0, m.CPUUtilization, 1e-12)
	assert.InDelta(t, 100.0/156.0, m.FairnessIndex, 1e-12)
	assert.Equal(t, 3, m.TotalProcesses)
	assert.Equal(t, int64(12), m.SimulationDuration)
}

func TestCalculateMetrics_ResponseTime_FallsBackToArrival(t *testing.T) {
	// GIVEN a process absent from the timeline
	p := NewProcess(5, "ghost", 3, 1, 0, 0)
	clock := NewSystemClock()

	m := CalculateMetrics([]*Process{p}, Timeline{}, clock)

	// THEN its response time is 0 and throughput is 0 over zero time
	assert.Zero(t, m.AvgResponseTime)
	assert.Zero(t, m.Throughput)
	assert.Equal(t, 1.0, m.FairnessIndex)
}

func TestCalculateMetrics_Empty(t *testing.T) {
	assert.Equal(t, Metrics{}, CalculateMetrics(nil, nil, NewSystemClock()))
}

func TestMetrics_AsMap_CoversEveryKey(t *testing.T) {
	m := Metrics{TotalProcesses: 3, SimulationDuration: 12, Throughput: 0.25}

	values := m.AsMap()

	require.Len(t, values, len(MetricKeys))
	for _, k := range MetricKeys {
		assert.Contains(t, values, k)
	}
	assert.Equal(t, 3.0, values[KeyTotalProcesses])
	assert.Equal(t, 12.0, values[KeySimulationDuration])
}

func TestMetrics_Print(t *testing.T) {
	var buf bytes.Buffer
	Metrics{TotalProcesses: 2, SimulationDuration: 10, FairnessIndex: 1}.Print(&buf)

	assert.Contains(t, buf.String(), "Total Processes      : 2")
	assert.Contains(t, buf.String(), "Fairness Index (Jain): 1.0000")
}
