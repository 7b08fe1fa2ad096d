// Computes aggregate performance metrics of a finished run: waiting,
// turnaround and response times, throughput, CPU utilization and
// Jain's fairness index over waiting times.

package sim

import (
	"fmt"
	"io"
)

// Metric keys, in reporting order.
const (
	KeyAvgWaitingTime     = "avg_waiting_time"
	KeyAvgTurnaroundTime  = "avg_turnaround_time"
	KeyAvgResponseTime    = "avg_response_time"
	KeyThroughput         = "throughput"
	KeyCPUUtilization     = "cpu_utilization"
	KeyFairnessIndex      = "fairness_index"
	KeyTotalProcesses     = "total_processes"
	KeySimulationDuration = "simulation_duration"
)

// MetricKeys lists every metric key in reporting order.
var MetricKeys = []string{
	KeyAvgWaitingTime,
	KeyAvgTurnaroundTime,
	KeyAvgResponseTime,
	KeyThroughput,
	KeyCPUUtilization,
	KeyFairnessIndex,
	KeyTotalProcesses,
	KeySimulationDuration,
}

// Metrics aggregates statistics about one run for final reporting.
// Values are exact; rounding happens only when rendering.
type Metrics struct {
	AvgWaitingTime     float64 `json:"avg_waiting_time"`
	AvgTurnaroundTime  float64 `json:"avg_turnaround_time"`
	AvgResponseTime    float64 `json:"avg_response_time"`
	Throughput         float64 `json:"throughput"`      // processes per tick
	CPUUtilization     float64 `json:"cpu_utilization"` // percentage
	FairnessIndex      float64 `json:"fairness_index"`  // Jain's index over waiting times
	TotalProcesses     int     `json:"total_processes"`
	SimulationDuration int64   `json:"simulation_duration"`
}

// CalculateMetrics derives Metrics from processes whose completion fields
// were written by a run, the run's timeline and the clock that drove it.
// An empty process list yields zero Metrics.
func CalculateMetrics(processes []*Process, timeline Timeline, clock *SystemClock) Metrics {
	if len(processes) == 0 {
		return Metrics{}
	}
	n := len(processes)
	waits := make([]int64, n)
	turnarounds := make([]int64, n)
	responses := make([]int64, n)

	firstStarts := timeline.FirstStarts()
	for i, p := range processes {
		waits[i] = p.WaitingTime
		turnarounds[i] = p.TurnaroundTime
		start, ok := firstStarts[p.PID]
		if !ok {
			start = p.ArrivalTime
		}
		responses[i] = start - p.ArrivalTime
	}

	m := Metrics{
		AvgWaitingTime:     CalculateMean(waits),
		AvgTurnaroundTime:  CalculateMean(turnarounds),
		AvgResponseTime:    CalculateMean(responses),
		CPUUtilization:     clock.Utilization(),
		FairnessIndex:      JainFairnessIndex(waits),
		TotalProcesses:     n,
		SimulationDuration: clock.GlobalTime,
	}
	if clock.GlobalTime > 0 {
		m.Throughput = float64(n) / float64(clock.GlobalTime)
	}
	return m
}

// AsMap returns the metrics keyed by MetricKeys.
func (m Metrics) AsMap() map[string]float64 {
	return map[string]float64{
		KeyAvgWaitingTime:     m.AvgWaitingTime,
		KeyAvgTurnaroundTime:  m.AvgTurnaroundTime,
		KeyAvgResponseTime:    m.AvgResponseTime,
		KeyThroughput:         m.Throughput,
		KeyCPUUtilization:     m.CPUUtilization,
		KeyFairnessIndex:      m.FairnessIndex,
		KeyTotalProcesses:     float64(m.TotalProcesses),
		KeySimulationDuration: float64(m.SimulationDuration),
	}
}

// Print writes a human-readable summary.
func (m Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Total Processes      : %d\n", m.TotalProcesses)
	fmt.Fprintf(w, "Simulation Duration  : %d units\n", m.SimulationDuration)
	if m.TotalProcesses > 0 {
		fmt.Fprintf(w, "CPU Utilization      : %.2f%%\n", m.CPUUtilization)
		fmt.Fprintf(w, "Throughput           : %.4f proc/unit\n", m.Throughput)
		fmt.Fprintf(w, "Avg Waiting Time     : %.2f units\n", m.AvgWaitingTime)
		fmt.Fprintf(w, "Avg Turnaround Time  : %.2f units\n", m.AvgTurnaroundTime)
		fmt.Fprintf(w, "Avg Response Time    : %.2f units\n", m.AvgResponseTime)
		fmt.Fprintf(w, "Fairness Index (Jain): %.4f\n", m.FairnessIndex)
	}
}
