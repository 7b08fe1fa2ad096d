// Runs one workload under several schedulers, each on a fresh Kernel with
// fresh process copies, and collects per-scheduler metrics and timelines.

package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// Comparison holds the outcome of one Compare call.
type Comparison struct {
	RunID     string              // unique per Compare call
	Order     []string            // result names in scheduler order
	Results   map[string]Metrics  // keyed by scheduler name (duplicates get "#2", "#3", ...)
	Timelines map[string]Timeline // final timelines, same keys as Results
}

// ComparisonRow is one flat row per algorithm, suitable for recording.
type ComparisonRow struct {
	RunID              string
	Algorithm          string
	AvgWaitingTime     float64
	AvgTurnaroundTime  float64
	AvgResponseTime    float64
	Throughput         float64
	CPUUtilization     float64
	FairnessIndex      float64
	TotalProcesses     int
	SimulationDuration int64
	ContextSwitches    int
}

// Comparator benchmarks schedulers against a shared workload.
type Comparator struct {
	Kernel KernelConfig
	Memory MemoryConfig

	log logrus.FieldLogger
}

// NewComparator creates a Comparator whose kernels use the given configs.
func NewComparator(kernel KernelConfig, mem MemoryConfig, logger logrus.FieldLogger) *Comparator {
	return &Comparator{Kernel: kernel, Memory: mem, log: logging.Component(logger, "comparator")}
}

// Compare runs every scheduler on the default memory model with the given
// context-switch overhead and a discarding logger.
func Compare(workload []*Process, schedulers []Scheduler, contextSwitch int64) *Comparison {
	return NewComparator(KernelConfig{ContextSwitchTime: contextSwitch}, MemoryConfig{}, nil).Compare(workload, schedulers)
}

// Compare runs each scheduler on its own Kernel and memory manager.
// Every run starts from snapshots of workload, so runs share no mutable
// state and the caller's processes are never touched.
// Metrics cover the processes the Kernel admitted.
func (c *Comparator) Compare(workload []*Process, schedulers []Scheduler) *Comparison {
	cmp := &Comparison{
		RunID:     xid.New().String(),
		Order:     make([]string, 0, len(schedulers)),
		Results:   make(map[string]Metrics, len(schedulers)),
		Timelines: make(map[string]Timeline, len(schedulers)),
	}
	seen := make(map[string]int, len(schedulers))

	for _, s := range schedulers {
		name := s.Name()
		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s#%d", name, seen[name])
		}
		c.log.WithField("run", cmp.RunID).Infof("Running benchmark for: %s", name)

		kernel := NewKernel(c.Kernel, NewMemoryManager(c.Memory, c.log), c.log)
		kernel.SetScheduler(s)
		for _, p := range workload {
			kernel.AddProcess(p.Snapshot())
		}
		timeline := kernel.Run()

		cmp.Order = append(cmp.Order, name)
		cmp.Results[name] = CalculateMetrics(kernel.Processes(), timeline, kernel.Clock())
		cmp.Timelines[name] = timeline
	}
	return cmp
}

// Rows returns one row per algorithm in run order.
func (cmp *Comparison) Rows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(cmp.Order))
	for _, name := range cmp.Order {
		m := cmp.Results[name]
		rows = append(rows, ComparisonRow{
			RunID:              cmp.RunID,
			Algorithm:          name,
			AvgWaitingTime:     m.AvgWaitingTime,
			AvgTurnaroundTime:  m.AvgTurnaroundTime,
			AvgResponseTime:    m.AvgResponseTime,
			Throughput:         m.Throughput,
			CPUUtilization:     m.CPUUtilization,
			FairnessIndex:      m.FairnessIndex,
			TotalProcesses:     m.TotalProcesses,
			SimulationDuration: m.SimulationDuration,
			ContextSwitches:    cmp.Timelines[name].ContextSwitches(),
		})
	}
	return rows
}

// Best returns the algorithm with the lowest average waiting time.
// Ties keep run order. Returns "" for an empty comparison.
func (cmp *Comparison) Best() string {
	best := ""
	for _, name := range cmp.Order {
		if best == "" || cmp.Results[name].AvgWaitingTime < cmp.Results[best].AvgWaitingTime {
			best = name
		}
	}
	return best
}

// WriteCSV writes a header "Algorithm" + MetricKeys and one row per algorithm.
func (cmp *Comparison) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Algorithm"}, MetricKeys...)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, name := range cmp.Order {
		values := cmp.Results[name].AsMap()
		record := make([]string, 0, len(MetricKeys)+1)
		record = append(record, name)
		for _, key := range MetricKeys {
			record = append(record, strconv.FormatFloat(values[key], 'f', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrintTable renders the comparison as a text table.
func (cmp *Comparison) PrintTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg Waiting", "Avg Turnaround", "Avg Response", "Throughput", "CPU Util %", "Fairness"})
	for _, name := range cmp.Order {
		m := cmp.Results[name]
		table.Append([]string{
			name,
			fmt.Sprintf("%.2f", m.AvgWaitingTime),
			fmt.Sprintf("%.2f", m.AvgTurnaroundTime),
			fmt.Sprintf("%.2f", m.AvgResponseTime),
			fmt.Sprintf("%.4f", m.Throughput),
			fmt.Sprintf("%.2f", m.CPUUtilization),
			fmt.Sprintf("%.4f", m.FairnessIndex),
		})
	}
	if best := cmp.Best(); best != "" {
		table.SetFooter([]string{"Best", best, "", "", "", "", ""})
	}
	table.Render()
}
