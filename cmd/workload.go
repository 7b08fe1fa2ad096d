package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/recording"
	"github.com/inference-sim/os-sim/sim/workload"
)

// mustLoadWorkload loads and validates the workload file, then applies any
// scheduler or context-switch flags the user set explicitly.
func mustLoadWorkload(path string, overrides schedulerFlags) (*workload.WorkloadSpec, []*sim.Process) {
	if path == "" {
		logrus.Fatalf("--workload is required")
	}
	spec, err := workload.LoadWorkloadSpec(path)
	if err != nil {
		logrus.Fatalf("Failed to load workload: %v", err)
	}
	overrides.apply(spec)
	procs, err := spec.BuildProcesses()
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Infof("Loaded %d processes from %s", len(procs), path)
	return spec, procs
}

// schedulerFlags holds the optional overrides shared by run and compare.
type schedulerFlags struct {
	name          *string
	quantum       *int64
	contextSwitch *int64
}

func (f schedulerFlags) apply(spec *workload.WorkloadSpec) {
	if f.name != nil {
		spec.Scheduler.Name = *f.name
	}
	if f.quantum != nil {
		spec.Scheduler.Quantum = *f.quantum
	}
	if f.contextSwitch != nil {
		spec.ContextSwitchTime = *f.contextSwitch
	}
}

// recordComparison writes cmp into a fresh database under recordDir.
func recordComparison(cmp *sim.Comparison) {
	path := recording.DefaultPath(recordDir)
	r, err := recording.New(path, logrus.StandardLogger())
	if err != nil {
		logrus.Fatalf("Failed to open recording: %v", err)
	}
	if err := recording.RecordComparison(r, cmp); err != nil {
		logrus.Fatalf("Failed to record run %s: %v", cmp.RunID, err)
	}
	if err := r.Close(); err != nil {
		logrus.Fatalf("Failed to flush recording: %v", err)
	}
	logrus.Infof("Recorded run %s to %s", cmp.RunID, path)
}
