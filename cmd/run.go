package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/trace"
)

var (
	workloadPath      string // Workload YAML file
	schedulerName     string // Overrides scheduler.name
	quantum           int64  // Overrides scheduler.quantum
	contextSwitchTime int64  // Overrides context_switch_time
	record            bool   // Write results to SQLite
)

// overridesFrom returns the scheduler flags the user actually set.
func overridesFrom(cmd *cobra.Command) schedulerFlags {
	var f schedulerFlags
	if cmd.Flags().Changed("scheduler") {
		f.name = &schedulerName
	}
	if cmd.Flags().Changed("quantum") {
		f.quantum = &quantum
	}
	if cmd.Flags().Changed("context-switch") {
		f.contextSwitch = &contextSwitchTime
	}
	return f
}

// runCmd executes one workload under one scheduler
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workload under one scheduler and print its timeline and metrics",
	Run: func(cmd *cobra.Command, args []string) {
		spec, procs := mustLoadWorkload(workloadPath, overridesFrom(cmd))
		logger := logrus.StandardLogger()

		kernel := sim.NewKernel(spec.KernelConfig(), sim.NewMemoryManager(spec.Memory, logger), logger)
		kernel.SetScheduler(sim.NewScheduler(spec.Scheduler))
		for _, p := range procs {
			if !kernel.AddProcess(p) {
				logrus.Warnf("Process %d was not admitted", p.PID)
			}
		}
		timeline, err := kernel.Dispatch()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		admitted := kernel.Processes()
		metrics := sim.CalculateMetrics(admitted, timeline, kernel.Clock())

		out := os.Stdout
		fmt.Fprintf(out, "Scheduler: %s\n", kernel.Scheduler().Name())
		printTimeline(out, timeline)
		printProcessTable(out, admitted)
		metrics.Print(out)
		if spec.KernelConfig().Trace.Enabled() {
			printTraceSummary(out, trace.Summarize(kernel.Trace()))
		}

		if record {
			name := kernel.Scheduler().Name()
			recordComparison(&sim.Comparison{
				RunID:     xid.New().String(),
				Order:     []string{name},
				Results:   map[string]sim.Metrics{name: metrics},
				Timelines: map[string]sim.Timeline{name: timeline},
			})
		}
		logrus.Info("Simulation complete.")
	},
}

func printTraceSummary(out io.Writer, s *trace.TraceSummary) {
	fmt.Fprintf(out, "Decisions: %d admitted, %d rejected", s.AdmittedCount, s.RejectedCount)
	reasons := make([]string, 0, len(s.RejectionReasons))
	for reason := range s.RejectionReasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(out, " [%s: %d]", reason, s.RejectionReasons[reason])
	}
	fmt.Fprintf(out, "\nContext switches: %d (%d ticks overhead)\n", s.ContextSwitches, s.OverheadTicks)
}

func addSchedulerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workloadPath, "workload", "", "Path to workload YAML file")
	cmd.Flags().StringVar(&schedulerName, "scheduler", "", "Scheduler: fcfs, rr, round-robin, priority, sjf (overrides the file)")
	cmd.Flags().Int64Var(&quantum, "quantum", 2, "Round robin time quantum (overrides the file)")
	cmd.Flags().Int64Var(&contextSwitchTime, "context-switch", 0, "Context switch overhead in ticks (overrides the file)")
	cmd.Flags().BoolVar(&record, "record", false, "Record results to a SQLite database under --record-dir")
}

func init() {
	addSchedulerFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
