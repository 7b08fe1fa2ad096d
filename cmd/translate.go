package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/memory"
)

var (
	translatePID   int   // Process whose address space is used
	logicalAddress int64 // Paging: logical address; segmentation: offset
	segmentID      int   // Segmentation only
)

// translateCmd loads a workload into its memory model and translates one address
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Allocate a workload's memory and translate a logical address for one process",
	Run: func(cmd *cobra.Command, args []string) {
		spec, procs := mustLoadWorkload(workloadPath, schedulerFlags{})
		mm := sim.NewMemoryManager(spec.Memory, logrus.StandardLogger())
		for _, p := range procs {
			if !mm.Allocate(p.PID, p.MemoryRequired) {
				logrus.Warnf("Process %d could not be allocated %d bytes", p.PID, p.MemoryRequired)
			}
		}

		out := os.Stdout
		switch m := mm.(type) {
		case *memory.Paging:
			table, _ := m.PageTable(translatePID)
			fmt.Fprintf(out, "Page table of P%d: %v\n", translatePID, table)
			phys, ok := m.Translate(translatePID, logicalAddress)
			reportTranslation(out, phys, ok, m.PageFaults)
		case *memory.Segmentation:
			fmt.Fprintf(out, "Segments of P%d: %v\n", translatePID, m.Status(translatePID).Segments)
			phys, ok := m.Translate(translatePID, segmentID, logicalAddress)
			reportTranslation(out, phys, ok, m.Faults)
		default:
			logrus.Fatalf("Memory model %T does not support translation", mm)
		}
	},
}

func reportTranslation(w io.Writer, phys int64, ok bool, faults int) {
	if !ok {
		fmt.Fprintf(w, "Translation FAULT (faults so far: %d)\n", faults)
		return
	}
	fmt.Fprintf(w, "Physical address: %d\n", phys)
}

func init() {
	translateCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to workload YAML file")
	translateCmd.Flags().IntVar(&translatePID, "pid", 1, "Process id")
	translateCmd.Flags().Int64Var(&logicalAddress, "address", 0, "Logical address (paging) or offset within the segment (segmentation)")
	translateCmd.Flags().IntVar(&segmentID, "segment", 0, "Segment id (segmentation only)")

	rootCmd.AddCommand(translateCmd)
}
