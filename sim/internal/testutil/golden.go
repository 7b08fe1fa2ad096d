// Package testutil provides shared test infrastructure for the simulator:
// the golden scheduling dataset and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenProcess is one process of a golden workload.
type GoldenProcess struct {
	PID      int   `json:"pid"`
	Arrival  int64 `json:"arrival"`
	Burst    int64 `json:"burst"`
	Priority int   `json:"priority"`
}

// GoldenTestCase is one workload run under one scheduler.
type GoldenTestCase struct {
	Name              string          `json:"name"`
	Scheduler         string          `json:"scheduler"`
	Quantum           int64           `json:"quantum"`
	ContextSwitchTime int64           `json:"context_switch_time"`
	Processes         []GoldenProcess `json:"processes"`
	Timeline          string          `json:"timeline"` // segments joined by single spaces
	Metrics           GoldenMetrics   `json:"metrics"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
type GoldenMetrics struct {
	// Exact match
	TotalProcesses     int   `json:"total_processes"`
	SimulationDuration int64 `json:"simulation_duration"`
	ContextSwitches    int   `json:"context_switches"`

	// Compared with relative tolerance
	AvgWaitingTime    float64 `json:"avg_waiting_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
	AvgResponseTime   float64 `json:"avg_response_time"`
	Throughput        float64 `json:"throughput"`
	CPUUtilization    float64 `json:"cpu_utilization"`
	FairnessIndex     float64 `json:"fairness_index"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
