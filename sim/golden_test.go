package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/os-sim/sim/internal/testutil"
)

// TestGoldenDataset runs every golden case through a Comparator and checks
// the final timeline and metrics against the recorded values.
func TestGoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN the case's workload
			procs := make([]*Process, 0, len(tc.Processes))
			for _, gp := range tc.Processes {
				procs = append(procs, NewProcess(gp.PID, "", gp.Arrival, gp.Burst, gp.Priority, 0))
			}
			sched := NewScheduler(SchedulerConfig{Name: tc.Scheduler, Quantum: tc.Quantum})

			// WHEN it runs on a fresh kernel
			cmp := Compare(procs, []Scheduler{sched}, tc.ContextSwitchTime)
			name := sched.Name()
			m := cmp.Results[name]
			tl := cmp.Timelines[name]

			// THEN the timeline and metrics match
			segs := make([]string, 0, len(tl))
			for _, s := range tl {
				segs = append(segs, s.String())
			}
			assert.Equal(t, tc.Timeline, strings.Join(segs, " "))

			want := tc.Metrics
			assert.Equal(t, want.TotalProcesses, m.TotalProcesses, "total_processes")
			assert.Equal(t, want.SimulationDuration, m.SimulationDuration, "simulation_duration")
			assert.Equal(t, want.ContextSwitches, tl.ContextSwitches(), "context_switches")

			const relTol = 1e-9
			testutil.AssertFloat64Equal(t, "avg_waiting_time", want.AvgWaitingTime, m.AvgWaitingTime, relTol)
			testutil.AssertFloat64Equal(t, "avg_turnaround_time", want.AvgTurnaroundTime, m.AvgTurnaroundTime, relTol)
			testutil.AssertFloat64Equal(t, "avg_response_time", want.AvgResponseTime, m.AvgResponseTime, relTol)
			testutil.AssertFloat64Equal(t, "throughput", want.Throughput, m.Throughput, relTol)
			testutil.AssertFloat64Equal(t, "cpu_utilization", want.CPUUtilization, m.CPUUtilization, relTol)
			testutil.AssertFloat64Equal(t, "fairness_index", want.FairnessIndex, m.FairnessIndex, relTol)
		})
	}
}
