package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/os-sim/sim"
)

var csvPath string // CSV export destination; "-" for stdout

// compareCmd benchmarks several schedulers on one workload
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run a workload under several schedulers and compare their metrics",
	Long: "Runs the workload under every scheduler listed in the file's schedulers section " +
		"(default: FCFS, Round Robin, Priority, SJF), each on a fresh kernel, and prints a comparison table.",
	Run: func(cmd *cobra.Command, args []string) {
		spec, procs := mustLoadWorkload(workloadPath, overridesFrom(cmd))
		logger := logrus.StandardLogger()

		configs := spec.ComparisonSet()
		schedulers := make([]sim.Scheduler, 0, len(configs))
		for _, c := range configs {
			schedulers = append(schedulers, sim.NewScheduler(c))
		}
		cmp := sim.NewComparator(spec.KernelConfig(), spec.Memory, logger).Compare(procs, schedulers)

		cmp.PrintTable(os.Stdout)

		switch csvPath {
		case "":
		case "-":
			if err := cmp.WriteCSV(os.Stdout); err != nil {
				logrus.Fatalf("Failed to write CSV: %v", err)
			}
		default:
			f, err := os.Create(csvPath)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", csvPath, err)
			}
			if err := cmp.WriteCSV(f); err != nil {
				logrus.Fatalf("Failed to write CSV: %v", err)
			}
			if err := f.Close(); err != nil {
				logrus.Fatalf("Failed to close %s: %v", csvPath, err)
			}
			logrus.Infof("Comparison written to %s", csvPath)
		}

		if record {
			recordComparison(cmp)
		}
	},
}

func init() {
	addSchedulerFlags(compareCmd)
	compareCmd.Flags().StringVar(&csvPath, "csv", "", "Write the comparison as CSV to this path (\"-\" for stdout)")
	rootCmd.AddCommand(compareCmd)
}
